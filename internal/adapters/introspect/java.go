//go:build cgo

package introspect

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/example/entitygen/internal/models"
)

// Available reports whether Java sources can be introspected.
func Available() bool {
	return true
}

var primitiveNodeTypes = map[string]bool{
	"integral_type":       true,
	"floating_point_type": true,
	"boolean_type":        true,
}

// parseJavaSource extracts the first top-level class of a compilation unit.
// Static fields are skipped. Annotation names are qualified through the
// file's imports where possible.
func parseJavaSource(ctx context.Context, source []byte) (*models.EntityModel, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	root := tree.RootNode()

	imports := collectImports(root, source)
	entity := &models.EntityModel{}
	var class *sitter.Node

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			if child.NamedChildCount() > 0 {
				entity.PackageName = child.NamedChild(0).Content(source)
			}
		case "class_declaration":
			if class == nil {
				class = child
			}
		}
	}
	if class == nil {
		return nil, fmt.Errorf("no class declaration found")
	}

	if name := class.ChildByFieldName("name"); name != nil {
		entity.Name = name.Content(source)
	}
	entity.Annotations = annotationsOf(class, source, imports)

	enums := make(map[string]bool)
	for _, e := range findNodes(class, "enum_declaration") {
		if name := e.ChildByFieldName("name"); name != nil {
			enums[name.Content(source)] = true
		}
	}

	body := class.ChildByFieldName("body")
	if body == nil {
		return entity, nil
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		decl := body.NamedChild(i)
		if decl.Type() != "field_declaration" {
			continue
		}
		entity.Fields = append(entity.Fields, fieldsOf(decl, source, imports, enums)...)
	}

	return entity, nil
}

// fieldsOf returns one descriptor per declarator of a field declaration.
func fieldsOf(decl *sitter.Node, source []byte, imports map[string]string, enums map[string]bool) []models.FieldDescriptor {
	static, final := false, false
	if mods := childOfType(decl, "modifiers"); mods != nil {
		for i := 0; i < int(mods.ChildCount()); i++ {
			switch mods.Child(i).Type() {
			case "static":
				static = true
			case "final":
				final = true
			}
		}
	}
	if static {
		return nil
	}

	typeNode := decl.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	declaredType := typeNode.Content(source)
	annotations := annotationsOf(decl, source, imports)

	var fields []models.FieldDescriptor
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		declarator := decl.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		if name == nil {
			continue
		}

		f := models.FieldDescriptor{
			Name:         name.Content(source),
			DeclaredType: declaredType,
			IsPrimitive:  primitiveNodeTypes[typeNode.Type()],
			IsFinal:      final,
			IsEnum:       enums[declaredType],
			Annotations:  annotations,
		}
		normaliseField(&f)
		fields = append(fields, f)
	}
	return fields
}

// annotationsOf returns the qualified names of the annotations in a
// declaration's modifiers.
func annotationsOf(decl *sitter.Node, source []byte, imports map[string]string) []string {
	mods := childOfType(decl, "modifiers")
	if mods == nil {
		return nil
	}

	var out []string
	for i := 0; i < int(mods.NamedChildCount()); i++ {
		a := mods.NamedChild(i)
		if a.Type() != "marker_annotation" && a.Type() != "annotation" {
			continue
		}
		name := a.ChildByFieldName("name")
		if name == nil {
			continue
		}
		out = append(out, qualifyName(name.Content(source), imports))
	}
	return out
}

// collectImports maps simple names to their single-type imports. Wildcard
// imports are recorded under "*" keyed by package.
func collectImports(root *sitter.Node, source []byte) map[string]string {
	imports := make(map[string]string)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "import_declaration" {
			continue
		}
		text := strings.TrimSpace(child.Content(source))
		text = strings.TrimSuffix(strings.TrimPrefix(text, "import"), ";")
		text = strings.TrimSpace(text)
		if strings.HasPrefix(text, "static ") {
			continue
		}
		if strings.HasSuffix(text, ".*") {
			imports["*"+strings.TrimSuffix(text, ".*")] = strings.TrimSuffix(text, ".*")
			continue
		}
		imports[models.SimpleName(text)] = text
	}
	return imports
}

// qualifyName resolves a simple annotation name through the imports. A
// wildcard import of a persistence package qualifies Entity and Id style
// names from that package.
func qualifyName(name string, imports map[string]string) string {
	if strings.Contains(name, ".") {
		return name
	}
	if q, ok := imports[name]; ok {
		return q
	}
	for _, pkg := range []string{"javax.persistence", "jakarta.persistence"} {
		if _, ok := imports["*"+pkg]; ok {
			return pkg + "." + name
		}
	}
	return name
}

func childOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func findNodes(root *sitter.Node, typ string) []*sitter.Node {
	var result []*sitter.Node

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Type() == typ {
			result = append(result, node)
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}

	walk(root)
	return result
}
