package models

import "fmt"

// ArtifactKind identifies one of the five generated layers.
type ArtifactKind string

const (
	KindDTO        ArtifactKind = "dto"
	KindRepository ArtifactKind = "repository"
	KindService    ArtifactKind = "service"
	KindController ArtifactKind = "controller"
	KindFilter     ArtifactKind = "filter"
)

// GenerationOrder is the fixed order in which artifacts are synthesized
// and placed.
var GenerationOrder = []ArtifactKind{
	KindDTO,
	KindRepository,
	KindService,
	KindController,
	KindFilter,
}

// ParseArtifactKind converts a user supplied name into an ArtifactKind.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	for _, k := range GenerationOrder {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown artifact kind %q (want one of dto, repository, service, controller, filter)", s)
}

// Artifact is one generated source file.
type Artifact struct {
	Kind        ArtifactKind `json:"kind"`
	ClassName   string       `json:"className"`
	PackageName string       `json:"packageName"`
	SourceText  string       `json:"sourceText"`
}

// FileName returns the Java file name for the artifact.
func (a *Artifact) FileName() string {
	return a.ClassName + ".java"
}

// QualifiedName returns the fully qualified class name.
func (a *Artifact) QualifiedName() string {
	if a.PackageName == "" {
		return a.ClassName
	}
	return a.PackageName + "." + a.ClassName
}

// WriteOutcome describes what placement did with an artifact.
type WriteOutcome string

const (
	OutcomeCreated     WriteOutcome = "created"
	OutcomeOverwritten WriteOutcome = "overwritten"
	OutcomeSkipped     WriteOutcome = "skipped"
	OutcomeDeclined    WriteOutcome = "declined"
	OutcomePlanned     WriteOutcome = "planned"
)

// PlacedArtifact pairs an artifact with its resolved location.
type PlacedArtifact struct {
	Artifact  *Artifact    `json:"artifact"`
	Directory string       `json:"directory"`
	Path      string       `json:"path"`
	Outcome   WriteOutcome `json:"outcome"`
}

// OverwritePolicy decides what placement does with an existing file whose
// content differs from the artifact.
type OverwritePolicy string

const (
	// PolicySilent deletes the existing file and writes the artifact.
	PolicySilent OverwritePolicy = "silent"
	// PolicyConfirm asks a Confirmer first and keeps the file on refusal.
	PolicyConfirm OverwritePolicy = "confirm"
)

// ParseOverwritePolicy converts a user supplied name into a policy. The
// empty string selects PolicySilent.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch OverwritePolicy(s) {
	case "", PolicySilent:
		return PolicySilent, nil
	case PolicyConfirm:
		return PolicyConfirm, nil
	default:
		return "", fmt.Errorf("unknown overwrite policy %q (want silent or confirm)", s)
	}
}
