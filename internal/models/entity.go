// Package models holds the plain data types shared by the generator:
// the entity description consumed from introspectors and the artifacts
// produced by the synthesizer.
package models

import "strings"

// EntityModel describes one persistent class. It is built once per
// generation request and treated as read-only afterwards.
type EntityModel struct {
	Name        string            `json:"name" yaml:"name" validate:"required"`
	PackageName string            `json:"packageName" yaml:"package" validate:"required"`
	Fields      []FieldDescriptor `json:"fields" yaml:"fields" validate:"dive"`
	Annotations []string          `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// FieldDescriptor describes a single entity field.
type FieldDescriptor struct {
	Name         string   `json:"name" yaml:"name" validate:"required"`
	DeclaredType string   `json:"type" yaml:"type" validate:"required"`
	IsCollection bool     `json:"collection,omitempty" yaml:"collection,omitempty"`
	IsPrimitive  bool     `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	IsFinal      bool     `json:"final,omitempty" yaml:"final,omitempty"`
	IsEnum       bool     `json:"enum,omitempty" yaml:"enum,omitempty"`
	Annotations  []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Field returns the field with the given name.
func (e *EntityModel) Field(name string) (FieldDescriptor, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// FieldNames returns the names of all fields in declaration order.
func (e *EntityModel) FieldNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Name
	}
	return names
}

// QualifiedName returns the fully qualified class name of the entity.
func (e *EntityModel) QualifiedName() string {
	if e.PackageName == "" {
		return e.Name
	}
	return e.PackageName + "." + e.Name
}

// HasAnnotation reports whether the field carries an annotation whose
// simple or qualified name equals name.
func (f FieldDescriptor) HasAnnotation(name string) bool {
	for _, a := range f.Annotations {
		if a == name || SimpleName(a) == name {
			return true
		}
	}
	return false
}

// SimpleName strips any package qualifier and leading '@' from a type or
// annotation name.
func SimpleName(qualified string) string {
	qualified = strings.TrimPrefix(qualified, "@")
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
