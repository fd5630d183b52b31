// Package testdata provides mock implementations for testing the tool
// packages.
package testdata

import (
	"context"

	"github.com/stackline/mcp-productboard/internal/productboard"
)

// MockClient implements productboard.Client for handler tests. Each
// operation returns the configured result or error and records the last
// query it received.
type MockClient struct {
	FeaturesResult    *productboard.ListResult
	FeaturesErr       error
	LastFeatureQuery  productboard.FeatureQuery
	FeatureRecord     productboard.Record
	FeatureErr        error
	LastFeatureID     string
	ReleasesResult    *productboard.ListResult
	ReleasesErr       error
	LastReleaseQuery  productboard.ReleaseQuery
	AssignmentsResult *productboard.ListResult
	AssignmentsErr    error
	LastAssignQuery   productboard.AssignmentQuery
	MoveResult        productboard.Record
	MoveErr           error
	LastMove          [3]string
	NotesResult       *productboard.ListResult
	NotesErr          error
	LastNoteQuery     productboard.NoteQuery
	CreatedNote       productboard.Record
	CreateNoteErr     error
	LastNoteInput     productboard.NoteInput
	CompaniesResult   *productboard.ListResult
	CompaniesErr      error
	Products          []productboard.Record
	ProductsErr       error
	Statuses          []productboard.Record
	StatusesErr       error
	DefaultProduct    string
	DefaultProductErr error
	Invalidated       bool
}

var _ productboard.Client = (*MockClient)(nil)

func (m *MockClient) ListFeatures(_ context.Context, q productboard.FeatureQuery) (*productboard.ListResult, error) {
	m.LastFeatureQuery = q
	if m.FeaturesErr != nil {
		return nil, m.FeaturesErr
	}
	return m.FeaturesResult, nil
}

func (m *MockClient) GetFeature(_ context.Context, id string) (productboard.Record, error) {
	m.LastFeatureID = id
	if m.FeatureErr != nil {
		return nil, m.FeatureErr
	}
	return m.FeatureRecord, nil
}

func (m *MockClient) ListReleases(_ context.Context, q productboard.ReleaseQuery) (*productboard.ListResult, error) {
	m.LastReleaseQuery = q
	if m.ReleasesErr != nil {
		return nil, m.ReleasesErr
	}
	return m.ReleasesResult, nil
}

func (m *MockClient) ListReleaseAssignments(_ context.Context, q productboard.AssignmentQuery) (*productboard.ListResult, error) {
	m.LastAssignQuery = q
	if m.AssignmentsErr != nil {
		return nil, m.AssignmentsErr
	}
	return m.AssignmentsResult, nil
}

func (m *MockClient) SetReleaseAssignment(_ context.Context, featureID, releaseID string, assigned bool) (productboard.Record, error) {
	return productboard.Record{"feature": featureID, "release": releaseID, "isAssigned": assigned}, nil
}

func (m *MockClient) MoveFeatureBetweenReleases(_ context.Context, featureID, fromReleaseID, toReleaseID string) (productboard.Record, error) {
	m.LastMove = [3]string{featureID, fromReleaseID, toReleaseID}
	if m.MoveErr != nil {
		return nil, m.MoveErr
	}
	if fromReleaseID == "" && toReleaseID == "" {
		return nil, &productboard.ValidationError{Message: "at least one of fromReleaseId and toReleaseId is required"}
	}
	return m.MoveResult, nil
}

func (m *MockClient) ListNotes(_ context.Context, q productboard.NoteQuery) (*productboard.ListResult, error) {
	m.LastNoteQuery = q
	if m.NotesErr != nil {
		return nil, m.NotesErr
	}
	return m.NotesResult, nil
}

func (m *MockClient) CreateNote(_ context.Context, input productboard.NoteInput) (productboard.Record, error) {
	m.LastNoteInput = input
	if m.CreateNoteErr != nil {
		return nil, m.CreateNoteErr
	}
	return m.CreatedNote, nil
}

func (m *MockClient) ListCompanies(_ context.Context, q productboard.CompanyQuery) (*productboard.ListResult, error) {
	if m.CompaniesErr != nil {
		return nil, m.CompaniesErr
	}
	return m.CompaniesResult, nil
}

func (m *MockClient) ListProducts(_ context.Context) ([]productboard.Record, error) {
	if m.ProductsErr != nil {
		return nil, m.ProductsErr
	}
	return m.Products, nil
}

func (m *MockClient) ListFeatureStatuses(_ context.Context) ([]productboard.Record, error) {
	if m.StatusesErr != nil {
		return nil, m.StatusesErr
	}
	return m.Statuses, nil
}

func (m *MockClient) DefaultProductID(_ context.Context) (string, error) {
	if m.DefaultProductErr != nil {
		return "", m.DefaultProductErr
	}
	return m.DefaultProduct, nil
}

func (m *MockClient) InvalidateDefaultProduct() {
	m.Invalidated = true
}
