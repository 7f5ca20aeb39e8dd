package scaffold

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/core/classify"
	"github.com/example/entitygen/internal/core/naming"
	"github.com/example/entitygen/internal/core/validation"
	"github.com/example/entitygen/internal/models"
	scaffoldtmpl "github.com/example/entitygen/internal/templates/scaffold"
)

// DefaultIDType is used when no field carries an identifier annotation.
const DefaultIDType = "Long"

// Generator renders Java artifacts from the embedded templates.
type Generator struct {
	funcs     template.FuncMap
	overrides map[models.ArtifactKind]string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTemplateOverrides replaces the embedded template of an artifact kind
// with caller supplied template text, keyed by kind name.
func WithTemplateOverrides(overrides map[string]string) GeneratorOption {
	return func(g *Generator) {
		for kind, text := range overrides {
			g.overrides[models.ArtifactKind(kind)] = text
		}
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		funcs:     scaffoldtmpl.TemplateFuncs(),
		overrides: make(map[models.ArtifactKind]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ResolvePackages derives the package of every artifact from the entity
// package and the configured suffixes. The filter package nests under the
// DTO package.
func ResolvePackages(entity *models.EntityModel, cfg *config.ArchitectureConfig) Packages {
	derive := func(kind models.ArtifactKind) string {
		return naming.DerivePackageName(entity.PackageName, cfg.PackageSuffix(kind))
	}
	dto := derive(models.KindDTO)
	filterSuffix := cfg.PackageSuffix(models.KindFilter)
	if filterSuffix == "" {
		filterSuffix = "filter"
	}
	return Packages{
		Entity:     entity.PackageName,
		DTO:        dto,
		Repository: derive(models.KindRepository),
		Service:    derive(models.KindService),
		Controller: derive(models.KindController),
		Filter:     dto + "." + filterSuffix,
	}
}

// IDType returns the declared type of the first identifier field, boxed,
// or DefaultIDType.
func IDType(entity *models.EntityModel) string {
	for _, f := range entity.Fields {
		if classify.IsIdentifier(f) {
			return boxed(f.DeclaredType)
		}
	}
	return DefaultIDType
}

// GenerateDTO renders the data-transfer object for the selected fields.
// dtoName optionally overrides the class name.
func (g *Generator) GenerateDTO(entity *models.EntityModel, cfg *config.ArchitectureConfig, fieldNames []string, opts validation.Options, dtoName string) (*models.Artifact, error) {
	fields, err := selectFields(entity, fieldNames)
	if err != nil {
		return nil, err
	}

	pkgs := ResolvePackages(entity, cfg)
	imports := importSet{}
	if cfg.UseLombok {
		imports.add("lombok.AllArgsConstructor", "lombok.Data", "lombok.NoArgsConstructor")
	}
	if cfg.UseDtoValidation {
		imports.add("javax.validation.constraints.*")
	}

	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		imports.addType(f.DeclaredType)
		view := fieldView{Type: f.DeclaredType, Name: f.Name}
		if cfg.UseDtoValidation {
			rules := validation.RulesFor(f, classify.ClassifyField(f), opts.For(f.Name))
			for _, r := range rules {
				view.Annotations = append(view.Annotations, r.Annotation())
			}
		}
		views = append(views, view)
	}

	view := dtoView{
		Package:    pkgs.DTO,
		Imports:    imports.sorted(),
		EntityName: entity.Name,
		ClassName:  naming.DtoClassName(entity.Name, dtoName),
		UseLombok:  cfg.UseLombok,
		Fields:     views,
	}
	return g.artifact(models.KindDTO, view.ClassName, view.Package, view)
}

// GenerateRepository renders the repository interface with finders for the
// selected filter fields.
func (g *Generator) GenerateRepository(entity *models.EntityModel, cfg *config.ArchitectureConfig, filterFields []string) (*models.Artifact, error) {
	fields, err := selectFields(entity, filterFields)
	if err != nil {
		return nil, err
	}

	pkgs := ResolvePackages(entity, cfg)
	idType := IDType(entity)

	imports := importSet{}
	imports.add("org.springframework.data.jpa.repository.JpaRepository")
	imports.add(entityImport(entity, pkgs.Repository))
	imports.addType(idType)

	methods := finderMethods(entity.Name, fields)
	if len(methods) > 0 {
		imports.add("java.util.List", "org.springframework.data.domain.Page", "org.springframework.data.domain.Pageable")
		for _, f := range fields {
			imports.addType(f.DeclaredType)
		}
	}

	view := repositoryView{
		Package:    pkgs.Repository,
		Imports:    imports.sorted(),
		EntityName: entity.Name,
		ClassName:  naming.ClassName(models.KindRepository, entity.Name),
		IDType:     idType,
		Methods:    methods,
	}
	return g.artifact(models.KindRepository, view.ClassName, view.Package, view)
}

// GenerateService renders the service class. Without a repository the
// class body is empty.
func (g *Generator) GenerateService(entity *models.EntityModel, cfg *config.ArchitectureConfig, hasRepository bool) (*models.Artifact, error) {
	pkgs := ResolvePackages(entity, cfg)
	idType := IDType(entity)
	repoName := naming.ClassName(models.KindRepository, entity.Name)
	paramName := naming.ClassName(models.KindFilter, entity.Name)

	imports := importSet{}
	imports.add("org.springframework.stereotype.Service")
	if hasRepository {
		imports.add(
			"java.util.List",
			"java.util.Optional",
			"org.springframework.data.domain.Page",
			"org.springframework.data.domain.PageRequest",
			"org.springframework.data.domain.Pageable",
			entityImport(entity, pkgs.Service),
			qualify(pkgs.Repository, repoName, pkgs.Service),
			qualify(pkgs.Filter, paramName, pkgs.Service),
		)
		imports.addType(idType)
	}

	view := serviceView{
		Package:         pkgs.Service,
		Imports:         imports.sorted(),
		ClassName:       naming.ClassName(models.KindService, entity.Name),
		EntityName:      entity.Name,
		HasRepository:   hasRepository,
		RepositoryName:  repoName,
		RepositoryField: naming.Decapitalize(repoName),
		IDType:          idType,
		ParamName:       paramName,
		ExampleField:    exampleSearchField(entity),
	}
	return g.artifact(models.KindService, view.ClassName, view.Package, view)
}

// GenerateController renders the REST controller. Without a service the
// class body is empty. dtoName must match the name passed to GenerateDTO.
func (g *Generator) GenerateController(entity *models.EntityModel, cfg *config.ArchitectureConfig, hasService bool, dtoName string) (*models.Artifact, error) {
	pkgs := ResolvePackages(entity, cfg)
	idType := IDType(entity)
	serviceName := naming.ClassName(models.KindService, entity.Name)
	paramName := naming.ClassName(models.KindFilter, entity.Name)
	dtoClass := naming.DtoClassName(entity.Name, dtoName)

	imports := importSet{}
	imports.add("org.springframework.web.bind.annotation.*")
	if hasService {
		imports.add(
			"java.util.HashMap",
			"java.util.List",
			"java.util.Map",
			"javax.validation.Valid",
			"org.springframework.data.domain.Page",
			"org.springframework.http.HttpStatus",
			"org.springframework.http.ResponseEntity",
			"org.springframework.validation.BindingResult",
			"org.springframework.validation.FieldError",
			entityImport(entity, pkgs.Controller),
			qualify(pkgs.DTO, dtoClass, pkgs.Controller),
			qualify(pkgs.Service, serviceName, pkgs.Controller),
			qualify(pkgs.Filter, paramName, pkgs.Controller),
		)
		imports.addType(idType)
	}

	view := controllerView{
		Package:      pkgs.Controller,
		Imports:      imports.sorted(),
		ClassName:    naming.ClassName(models.KindController, entity.Name),
		RouteBase:    naming.RouteBase(entity.Name),
		EntityName:   entity.Name,
		HasService:   hasService,
		ServiceName:  serviceName,
		ServiceField: naming.Decapitalize(serviceName),
		ParamName:    paramName,
		DtoName:      dtoClass,
		IDType:       idType,
	}
	return g.artifact(models.KindController, view.ClassName, view.Package, view)
}

// GenerateFilter renders the search parameter class for the selected
// fields.
func (g *Generator) GenerateFilter(entity *models.EntityModel, cfg *config.ArchitectureConfig, filterFields []string) (*models.Artifact, error) {
	fields, err := selectFields(entity, filterFields)
	if err != nil {
		return nil, err
	}

	pkgs := ResolvePackages(entity, cfg)
	imports := importSet{}
	if cfg.UseLombok {
		imports.add("lombok.AllArgsConstructor", "lombok.Data", "lombok.NoArgsConstructor")
	}

	views := filterFieldViews(fields)
	for _, v := range views {
		imports.addType(v.Type)
	}

	all := append(append([]fieldView{}, views...),
		fieldView{Type: "Integer", Name: "page"},
		fieldView{Type: "Integer", Name: "size"},
	)

	view := filterView{
		Package:    pkgs.Filter,
		Imports:    imports.sorted(),
		EntityName: entity.Name,
		ClassName:  naming.ClassName(models.KindFilter, entity.Name),
		UseLombok:  cfg.UseLombok,
		Fields:     views,
		AllFields:  all,
	}
	return g.artifact(models.KindFilter, view.ClassName, view.Package, view)
}

func (g *Generator) artifact(kind models.ArtifactKind, className, pkg string, view any) (*models.Artifact, error) {
	source, err := g.render(kind, view)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", kind, err)
	}
	return &models.Artifact{
		Kind:        kind,
		ClassName:   className,
		PackageName: pkg,
		SourceText:  source,
	}, nil
}

// render executes the template of an artifact kind together with the
// shared templates.
func (g *Generator) render(kind models.ArtifactKind, data any) (string, error) {
	name := string(kind) + ".java"

	content, ok := g.overrides[kind]
	if !ok {
		var err error
		content, err = scaffoldtmpl.GetJavaTemplate(name)
		if err != nil {
			return "", err
		}
	}

	tmpl, err := template.New(name).Funcs(g.funcs).Parse(content)
	if err != nil {
		return "", err
	}
	for _, shared := range scaffoldtmpl.SharedTemplates {
		sharedContent, err := scaffoldtmpl.GetJavaTemplate(shared)
		if err != nil {
			return "", err
		}
		if _, err := tmpl.New(shared).Parse(sharedContent); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// finderMethods returns the repository method signatures for the filter
// fields, in selection order.
func finderMethods(entityName string, fields []models.FieldDescriptor) []string {
	list := "List<" + entityName + "> "
	page := "Page<" + entityName + "> "

	var methods []string
	for _, f := range fields {
		t, n := f.DeclaredType, f.Name
		minName, maxName := "min"+naming.Capitalize(n), "max"+naming.Capitalize(n)

		methods = append(methods,
			list+naming.FinderName(n, "")+"("+t+" "+n+")",
			page+naming.FinderName(n, "")+"("+t+" "+n+", Pageable pageable)",
		)

		switch classify.ClassifyField(f) {
		case classify.CategoryString:
			methods = append(methods,
				list+naming.FinderName(n, "ContainingIgnoreCase")+"(String "+n+")",
				page+naming.FinderName(n, "ContainingIgnoreCase")+"(String "+n+", Pageable pageable)",
			)
		case classify.CategoryNumeric, classify.CategoryTemporal:
			gt, lt := "GreaterThanEqual", "LessThanEqual"
			if classify.ClassifyField(f) == classify.CategoryTemporal {
				gt, lt = "After", "Before"
			}
			methods = append(methods,
				list+naming.FinderName(n, gt)+"("+t+" "+minName+")",
				list+naming.FinderName(n, lt)+"("+t+" "+maxName+")",
				page+naming.FinderName(n, "Between")+"("+t+" "+minName+", "+t+" "+maxName+", Pageable pageable)",
			)
		}
	}

	if len(fields) > 1 {
		names := make([]string, len(fields))
		params := ""
		for i, f := range fields {
			names[i] = f.Name
			if i > 0 {
				params += ", "
			}
			params += f.DeclaredType + " " + f.Name
		}
		combined := naming.CombinedFinderName(names)
		methods = append(methods,
			list+combined+"("+params+")",
			page+combined+"("+params+", Pageable pageable)",
		)
	}
	return methods
}

// filterFieldViews maps each field to its search shape: exact match for
// string, boolean and enum-like fields, min/max for numeric fields and
// from/to for temporal fields. Other categories have no search shape.
func filterFieldViews(fields []models.FieldDescriptor) []fieldView {
	var views []fieldView
	for _, f := range fields {
		n := naming.Capitalize(f.Name)
		switch classify.ClassifyField(f) {
		case classify.CategoryString, classify.CategoryEnumLike:
			views = append(views, fieldView{Type: f.DeclaredType, Name: f.Name})
		case classify.CategoryBoolean:
			views = append(views, fieldView{Type: "Boolean", Name: f.Name})
		case classify.CategoryNumeric:
			t := boxed(f.DeclaredType)
			views = append(views,
				fieldView{Type: t, Name: "min" + n},
				fieldView{Type: t, Name: "max" + n},
			)
		case classify.CategoryTemporal:
			views = append(views,
				fieldView{Type: f.DeclaredType, Name: "from" + n},
				fieldView{Type: f.DeclaredType, Name: "to" + n},
			)
		}
	}
	return views
}

// selectFields resolves field names against the entity, keeping the
// caller's order.
func selectFields(entity *models.EntityModel, names []string) ([]models.FieldDescriptor, error) {
	fields := make([]models.FieldDescriptor, 0, len(names))
	for _, name := range names {
		f, ok := entity.Field(name)
		if !ok {
			return nil, fmt.Errorf("entity %s has no field %q", entity.Name, name)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// exampleSearchField picks the field used in the service search example.
func exampleSearchField(entity *models.EntityModel) string {
	for _, f := range entity.Fields {
		if classify.ClassifyField(f) == classify.CategoryString {
			return f.Name
		}
	}
	return "name"
}

func entityImport(entity *models.EntityModel, fromPackage string) string {
	if entity.PackageName == "" || entity.PackageName == fromPackage {
		return ""
	}
	return entity.QualifiedName()
}

// qualify returns the import for pkg.class, or "" when no import is needed.
func qualify(pkg, class, fromPackage string) string {
	if pkg == "" || pkg == fromPackage {
		return ""
	}
	return pkg + "." + class
}

var boxedTypes = map[string]string{
	"int":     "Integer",
	"long":    "Long",
	"short":   "Short",
	"byte":    "Byte",
	"float":   "Float",
	"double":  "Double",
	"boolean": "Boolean",
	"char":    "Character",
}

func boxed(t string) string {
	if b, ok := boxedTypes[t]; ok {
		return b
	}
	return t
}
