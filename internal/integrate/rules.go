package integrate

import (
	"fmt"
	"strings"

	"github.com/thiagodp/apache-php/internal/config"
	"github.com/thiagodp/apache-php/internal/patch"
)

// DefaultSrvRoot is the SRVROOT line of a stock Apache Lounge httpd.conf.
const DefaultSrvRoot = `Define SRVROOT "c:/Apache24"`

// ExtensionDirLine is the commented extension_dir of php.ini-development.
const ExtensionDirLine = `;extension_dir = "ext"`

// HttpdRules points SRVROOT at the located Apache root.
func HttpdRules(l config.Layout) []patch.Rule {
	return []patch.Rule{
		{From: DefaultSrvRoot, To: fmt.Sprintf(`Define SRVROOT "%s"`, config.SlashPath(l.ApacheRoot))},
	}
}

// ModuleRules uncomment the LoadModule lines of the named modules.
func ModuleRules(modules []string) []patch.Rule {
	rules := make([]patch.Rule, 0, len(modules))
	for _, m := range modules {
		line := fmt.Sprintf("LoadModule %s_module modules/mod_%s.so", m, m)
		rules = append(rules, patch.Rule{From: "#" + line, To: line})
	}
	return rules
}

// HttpdAdditions loads PHP 8 as an Apache module.
func HttpdAdditions(l config.Layout) []string {
	return []string{
		"",
		"# Integration with PHP 8",
		fmt.Sprintf(`LoadModule php8_module "%s"`, config.SlashPath(l.PhpModule)),
		"",
		"<IfModule php8_module>",
		"AddHandler application/x-httpd-php .php",
		"DirectoryIndex index.php index.html",
		fmt.Sprintf(`PHPIniDir "%s"`, config.SlashPath(l.PhpRoot)),
		"</IfModule>",
	}
}

// PhpIniRules enables extension_dir with the absolute ext path.
func PhpIniRules(l config.Layout) []patch.Rule {
	return []patch.Rule{
		{From: ExtensionDirLine, To: fmt.Sprintf(`extension_dir="%s"`, l.ExtensionDir)},
	}
}

func moduleList(modules []string) string {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, "mod_"+m)
	}
	return strings.Join(names, ", ")
}
