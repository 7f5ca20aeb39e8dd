// Package scaffold provides the embedded Java templates used by the
// artifact generators.
package scaffold

import (
	"embed"
	"strings"
	"text/template"

	"github.com/example/entitygen/internal/core/naming"
)

//go:embed java/*.tmpl
var javaTemplates embed.FS

// SharedTemplates are parsed into every template set.
var SharedTemplates = []string{"accessors.java"}

// GetJavaTemplate returns the content of a Java template, e.g. "dto.java".
func GetJavaTemplate(name string) (string, error) {
	content, err := javaTemplates.ReadFile("java/" + name + ".tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ListJavaTemplates returns the names of all embedded templates.
func ListJavaTemplates() ([]string, error) {
	entries, err := javaTemplates.ReadDir("java")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	return names, nil
}

// TemplateFuncs returns the template function map for Java templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"title":   naming.Capitalize,
		"untitle": naming.Decapitalize,
		"getter":  naming.GetterName,
		"setter":  naming.SetterName,
		"finder":  naming.FinderName,
		"join":    strings.Join,
	}
}
