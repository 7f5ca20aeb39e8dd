package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/entitygen/internal/config"
	"github.com/example/entitygen/internal/models"
	"github.com/example/entitygen/internal/ports/primary"
)

var allKinds = []models.ArtifactKind{
	models.KindController,
	models.KindFilter,
	models.KindDTO,
	models.KindService,
	models.KindRepository,
}

func customerEntity() *models.EntityModel {
	return &models.EntityModel{
		Name:        "Customer",
		PackageName: "com.acme.entity",
		Annotations: []string{"javax.persistence.Entity"},
		Fields: []models.FieldDescriptor{
			{Name: "id", DeclaredType: "Long", Annotations: []string{"javax.persistence.Id"}},
			{Name: "name", DeclaredType: "String"},
			{Name: "email", DeclaredType: "String"},
			{Name: "age", DeclaredType: "Integer"},
		},
	}
}

func customerRequest() primary.GenerateRequest {
	return primary.GenerateRequest{
		Entity:       customerEntity(),
		Config:       config.DefaultArchitectureConfig(),
		Components:   allKinds,
		DtoFields:    []string{"id", "name", "email"},
		FilterFields: []string{"name", "age"},
	}
}

type generationFixture struct {
	fs      *mockFileSystem
	history *mockHistoryRepository
	service *GenerationServiceImpl
	logs    *observer.ObservedLogs
}

func newGenerationFixture(t *testing.T) *generationFixture {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	fsys := newMockFileSystem()
	require.NoError(t, fsys.fs.MkdirAll("src/main/java/com/acme/entity", 0o755))
	history := newMockHistoryRepository()
	placement := NewPlacementService(fsys, nil, NewEffectExecutor(fsys, log), log)

	return &generationFixture{
		fs:      fsys,
		history: history,
		service: NewGenerationService(placement, fsys, history, log),
		logs:    logs,
	}
}

func TestGenerationService_Generate_AllComponents(t *testing.T) {
	f := newGenerationFixture(t)

	resp, err := f.service.Generate(context.Background(), customerRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.RunID, "RUN-"), resp.RunID)
	wantPaths := []string{
		"src/main/java/com/acme/dto/CustomerDto.java",
		"src/main/java/com/acme/repository/CustomerRepository.java",
		"src/main/java/com/acme/service/CustomerService.java",
		"src/main/java/com/acme/controller/CustomerController.java",
		"src/main/java/com/acme/dto/filter/CustomerParam.java",
	}
	require.Len(t, resp.Placed, len(wantPaths))
	for i, p := range resp.Placed {
		assert.Equal(t, wantPaths[i], p.Path)
		assert.Equal(t, models.OutcomeCreated, p.Outcome)
		assert.Equal(t, p.Artifact.SourceText, f.fs.read(p.Path))
	}

	assert.Contains(t, f.fs.read(wantPaths[1]), "findByNameAndAge")
	assert.Contains(t, f.fs.read(wantPaths[2]), "private final CustomerRepository customerRepository;")

	run := f.history.runs[resp.RunID]
	require.NotNil(t, run)
	assert.Equal(t, RunStatusSucceeded, run.Status)
	assert.Equal(t, "silent", run.Policy)
	require.Len(t, f.history.artifacts[resp.RunID], 5)
	assert.Equal(t, "dto", f.history.artifacts[resp.RunID][0].Kind)
	assert.Equal(t, 4, f.history.artifacts[resp.RunID][4].Position)

	placedLogs := f.logs.FilterMessage("artifact placed").All()
	require.Len(t, placedLogs, 5)
	assert.Equal(t, resp.RunID, placedLogs[0].ContextMap()["run_id"])
}

func TestGenerationService_Generate_Idempotent(t *testing.T) {
	f := newGenerationFixture(t)

	_, err := f.service.Generate(context.Background(), customerRequest())
	require.NoError(t, err)
	writes := len(f.fs.writes)

	resp, err := f.service.Generate(context.Background(), customerRequest())
	require.NoError(t, err)

	for _, p := range resp.Placed {
		assert.Equal(t, models.OutcomeSkipped, p.Outcome, p.Path)
	}
	assert.Equal(t, writes, len(f.fs.writes))
}

func TestGenerationService_Generate_SelectionErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*primary.GenerateRequest)
	}{
		{"no components", func(r *primary.GenerateRequest) { r.Components = nil }},
		{"dto without fields", func(r *primary.GenerateRequest) { r.DtoFields = nil }},
		{"filter without fields", func(r *primary.GenerateRequest) {
			r.Components = []models.ArtifactKind{models.KindFilter}
			r.FilterFields = nil
		}},
		{"unknown field", func(r *primary.GenerateRequest) { r.DtoFields = []string{"missing"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGenerationFixture(t)
			req := customerRequest()
			tt.modify(&req)

			_, err := f.service.Generate(context.Background(), req)

			var selErr *models.SelectionError
			require.True(t, errors.As(err, &selErr), "got %v", err)
			assert.Empty(t, f.fs.writes)
			assert.Empty(t, f.history.runs)
		})
	}
}

func TestGenerationService_Generate_InvalidRequest(t *testing.T) {
	f := newGenerationFixture(t)

	req := customerRequest()
	req.Entity = nil
	_, err := f.service.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid generate request")

	req = customerRequest()
	req.Components = []models.ArtifactKind{"widget"}
	_, err = f.service.Generate(context.Background(), req)
	require.Error(t, err)

	req = customerRequest()
	req.Policy = "sometimes"
	_, err = f.service.Generate(context.Background(), req)
	require.Error(t, err)
}

func TestGenerationService_Generate_NoSourceRoot(t *testing.T) {
	fsys := newMockFileSystem()
	history := newMockHistoryRepository()
	svc := NewGenerationService(NewPlacementService(fsys, nil, NewEffectExecutor(fsys, nil), nil), fsys, history, nil)

	resp, err := svc.Generate(context.Background(), customerRequest())
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, models.ErrSourceRootNotFound))

	var genErr *models.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, models.KindDTO, genErr.Kind)
	assert.Empty(t, genErr.Placed)
	assert.Empty(t, fsys.writes)

	require.Len(t, history.runs, 1)
	for _, run := range history.runs {
		assert.Equal(t, RunStatusFailed, run.Status)
		assert.NotEmpty(t, run.Error)
	}
}

func TestGenerationService_Generate_NoSourceRootWritesNothing(t *testing.T) {
	fsys := newMockFileSystem()
	svc := NewGenerationService(NewPlacementService(fsys, nil, NewEffectExecutor(fsys, nil), nil), fsys, nil, nil)

	req := customerRequest()
	req.Config.CustomDtoPath = "out/dto"

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrSourceRootNotFound))

	var genErr *models.GenerationError
	require.True(t, errors.As(err, &genErr), "got %v", err)
	assert.Equal(t, models.KindRepository, genErr.Kind)
	assert.Empty(t, genErr.Placed)
	assert.Empty(t, fsys.writes)

	exists, err := afero.Exists(fsys.fs, "out/dto")
	require.NoError(t, err)
	assert.False(t, exists, "custom directories are not created")
}

func TestGenerationService_Generate_AllCustomPathsNeedNoSourceRoot(t *testing.T) {
	fsys := newMockFileSystem()
	svc := NewGenerationService(NewPlacementService(fsys, nil, NewEffectExecutor(fsys, nil), nil), fsys, nil, nil)

	req := customerRequest()
	req.Components = []models.ArtifactKind{models.KindDTO}
	req.Config.CustomDtoPath = "out/dto"

	resp, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Placed, 1)
	assert.Equal(t, "out/dto/com/acme/dto/CustomerDto.java", resp.Placed[0].Path)
}

func TestGenerationService_Generate_PartialFailure(t *testing.T) {
	fsys := newMockFileSystem()
	require.NoError(t, fsys.fs.MkdirAll("src/main/java/com/acme/entity", 0o755))
	fsys.writeErrs = map[string]error{
		"src/main/java/com/acme/repository/CustomerRepository.java": errors.New("disk full"),
	}
	svc := NewGenerationService(NewPlacementService(fsys, nil, NewEffectExecutor(fsys, nil), nil), fsys, nil, nil)

	_, err := svc.Generate(context.Background(), customerRequest())

	var genErr *models.GenerationError
	require.True(t, errors.As(err, &genErr), "got %v", err)
	assert.Equal(t, models.KindRepository, genErr.Kind)
	require.Len(t, genErr.Placed, 1)
	assert.Equal(t, "src/main/java/com/acme/dto/CustomerDto.java", genErr.Placed[0].Path)
	assert.NotEmpty(t, fsys.read("src/main/java/com/acme/dto/CustomerDto.java"))
}

func TestGenerationService_Generate_InvalidCustomPaths(t *testing.T) {
	f := newGenerationFixture(t)

	req := customerRequest()
	req.Config.CustomDtoPath = "bad?path"
	req.Config.CustomControllerPath = "also*bad"

	_, err := f.service.Generate(context.Background(), req)

	var pathErrs models.PathErrors
	require.True(t, errors.As(err, &pathErrs), "got %v", err)
	assert.Len(t, pathErrs, 2)
	assert.Empty(t, f.fs.writes)
}

func TestGenerationService_Generate_Cancelled(t *testing.T) {
	f := newGenerationFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Generate(ctx, customerRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, f.fs.writes)
}

func TestGenerationService_Generate_DryRun(t *testing.T) {
	f := newGenerationFixture(t)

	req := customerRequest()
	req.DryRun = true
	resp, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Placed, 5)
	for _, p := range resp.Placed {
		assert.Equal(t, models.OutcomePlanned, p.Outcome)
	}
	assert.Empty(t, f.fs.writes)
	assert.True(t, f.history.runs[resp.RunID].DryRun)
}

func TestGenerationService_Generate_ServiceWithoutRepository(t *testing.T) {
	f := newGenerationFixture(t)

	req := customerRequest()
	req.Components = []models.ArtifactKind{models.KindService}
	resp, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Placed, 1)
	assert.NotContains(t, resp.Placed[0].Artifact.SourceText, "CustomerRepository")
}

func TestGenerationService_Generate_TemplateOverride(t *testing.T) {
	f := newGenerationFixture(t)

	req := customerRequest()
	req.Components = []models.ArtifactKind{models.KindDTO}
	req.TemplateOverrides = map[string]string{
		"dto": "package {{.Package}};\n\npublic class {{.ClassName}} {}\n",
	}
	resp, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "package com.acme.dto;\n\npublic class CustomerDto {}\n",
		f.fs.read(resp.Placed[0].Path))
}

func TestGenerationService_FindExisting(t *testing.T) {
	f := newGenerationFixture(t)
	f.fs.put("src/main/java/com/acme/dto/CustomerDto.java", "x")
	f.fs.put("src/main/java/com/acme/service/impl/CustomerServiceImpl.java", "x")
	f.fs.put("src/main/java/com/acme/dto/filter/CustomerParam.java", "x")
	f.fs.put("src/main/java/com/acme/dto/OrderDto.java", "x")
	f.fs.put("src/main/java/com/acme/entity/Customer.java", "x")

	found, err := f.service.FindExisting(context.Background(), "Customer", nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"src/main/java/com/acme/dto/CustomerDto.java",
		"src/main/java/com/acme/service/impl/CustomerServiceImpl.java",
		"src/main/java/com/acme/dto/filter/CustomerParam.java",
	}, found)

	none, err := f.service.FindExisting(context.Background(), "Customer", []string{"missing/root"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
