// Package scaffold synthesizes the Java source of the five CRUD artifacts
// (DTO, repository, service, controller, filter) for an entity.
package scaffold

// Packages holds the resolved package of every artifact for one entity.
type Packages struct {
	Entity     string
	DTO        string
	Repository string
	Service    string
	Controller string
	Filter     string
}

// fieldView is a declared field as rendered by the DTO and filter
// templates.
type fieldView struct {
	Annotations []string
	Type        string
	Name        string
}

type dtoView struct {
	Package    string
	Imports    []string
	EntityName string
	ClassName  string
	UseLombok  bool
	Fields     []fieldView
}

type repositoryView struct {
	Package    string
	Imports    []string
	EntityName string
	ClassName  string
	IDType     string
	Methods    []string
}

type serviceView struct {
	Package         string
	Imports         []string
	ClassName       string
	EntityName      string
	HasRepository   bool
	RepositoryName  string
	RepositoryField string
	IDType          string
	ParamName       string
	ExampleField    string
}

type controllerView struct {
	Package      string
	Imports      []string
	ClassName    string
	RouteBase    string
	EntityName   string
	HasService   bool
	ServiceName  string
	ServiceField string
	ParamName    string
	DtoName      string
	IDType       string
}

type filterView struct {
	Package    string
	Imports    []string
	EntityName string
	ClassName  string
	UseLombok  bool
	Fields     []fieldView
	AllFields  []fieldView
}
