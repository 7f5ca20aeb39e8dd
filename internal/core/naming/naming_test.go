package naming

import (
	"testing"

	"github.com/example/entitygen/internal/models"
)

func TestCapitalizeDecapitalize(t *testing.T) {
	tests := []struct {
		in, up, down string
	}{
		{"customer", "Customer", "customer"},
		{"Customer", "Customer", "customer"},
		{"birthDate", "BirthDate", "birthDate"},
		{"URL", "URL", "uRL"},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.up {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.up)
		}
		if got := Decapitalize(tt.in); got != tt.down {
			t.Errorf("Decapitalize(%q) = %q, want %q", tt.in, got, tt.down)
		}
	}
}

func TestRouteBase(t *testing.T) {
	tests := []struct {
		entity string
		want   string
	}{
		{"Customer", "/customers"},
		{"OrderItem", "/orderItems"},
		{"Address", "/addresss"},
	}

	for _, tt := range tests {
		if got := RouteBase(tt.entity); got != tt.want {
			t.Errorf("RouteBase(%q) = %q, want %q", tt.entity, got, tt.want)
		}
	}
}

func TestDerivePackageName(t *testing.T) {
	tests := []struct {
		name      string
		pkg       string
		component string
		want      string
	}{
		{"strips entity", "com.acme.entity", "dto", "com.acme.dto"},
		{"strips entities", "com.acme.entities", "service", "com.acme.service"},
		{"strips model", "com.acme.model", "repository", "com.acme.repository"},
		{"strips models", "com.acme.models", "controller", "com.acme.controller"},
		{"no known suffix", "com.acme.domain", "dto", "com.acme.domain.dto"},
		{"does not strip partial segment", "com.acme.supermodel", "dto", "com.acme.supermodel.dto"},
		{"empty package", "", "dto", "dto"},
		{"empty component", "com.acme.entity", "", "com.acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DerivePackageName(tt.pkg, tt.component); got != tt.want {
				t.Errorf("DerivePackageName(%q, %q) = %q, want %q", tt.pkg, tt.component, got, tt.want)
			}
		})
	}
}

func TestPackageHelpers(t *testing.T) {
	if got := ParentPackage("com.acme.dto"); got != "com.acme" {
		t.Errorf("ParentPackage() = %q", got)
	}
	if got := ParentPackage("dto"); got != "" {
		t.Errorf("ParentPackage() = %q, want empty", got)
	}
	if got := LastSegment("com.acme.dto"); got != "dto" {
		t.Errorf("LastSegment() = %q", got)
	}
	segs := PackageSegments("com.acme.dto")
	if len(segs) != 3 || segs[2] != "dto" {
		t.Errorf("PackageSegments() = %v", segs)
	}
	if PackageSegments("") != nil {
		t.Error("PackageSegments(\"\") should be nil")
	}
}

func TestClassNames(t *testing.T) {
	tests := []struct {
		kind models.ArtifactKind
		want string
	}{
		{models.KindDTO, "CustomerDto"},
		{models.KindRepository, "CustomerRepository"},
		{models.KindService, "CustomerService"},
		{models.KindController, "CustomerController"},
		{models.KindFilter, "CustomerParam"},
	}

	for _, tt := range tests {
		if got := ClassName(tt.kind, "Customer"); got != tt.want {
			t.Errorf("ClassName(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDtoClassName(t *testing.T) {
	tests := []struct {
		override string
		want     string
	}{
		{"", "CustomerDto"},
		{"CustomerSummary", "CustomerSummaryDto"},
		{"CustomerSummaryDto", "CustomerSummaryDto"},
		{"  Brief  ", "BriefDto"},
	}

	for _, tt := range tests {
		if got := DtoClassName("Customer", tt.override); got != tt.want {
			t.Errorf("DtoClassName(%q) = %q, want %q", tt.override, got, tt.want)
		}
	}
}

func TestFinderNames(t *testing.T) {
	if got := FinderName("email", ""); got != "findByEmail" {
		t.Errorf("FinderName() = %q", got)
	}
	if got := FinderName("age", "Between"); got != "findByAgeBetween" {
		t.Errorf("FinderName() = %q", got)
	}
	if got := CombinedFinderName([]string{"name", "age"}); got != "findByNameAndAge" {
		t.Errorf("CombinedFinderName() = %q", got)
	}
	if got := GetterName("birthDate"); got != "getBirthDate" {
		t.Errorf("GetterName() = %q", got)
	}
	if got := SetterName("birthDate"); got != "setBirthDate" {
		t.Errorf("SetterName() = %q", got)
	}
}

func TestCaseConversion(t *testing.T) {
	tests := []struct {
		in, pascal, camel string
	}{
		{"birth_date", "BirthDate", "birthDate"},
		{"order-item", "OrderItem", "orderItem"},
		{"customerId", "CustomerId", "customerId"},
		{"customer", "Customer", "customer"},
	}

	for _, tt := range tests {
		if got := ToPascalCase(tt.in); got != tt.pascal {
			t.Errorf("ToPascalCase(%q) = %q, want %q", tt.in, got, tt.pascal)
		}
		if got := ToCamelCase(tt.in); got != tt.camel {
			t.Errorf("ToCamelCase(%q) = %q, want %q", tt.in, got, tt.camel)
		}
	}
}
