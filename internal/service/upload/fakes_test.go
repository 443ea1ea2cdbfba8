package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"cobalt/internal/domain"
	models "cobalt/internal/domain/models/upload"
	"cobalt/internal/domain/repositories"
	uploadSvc "cobalt/internal/domain/services/upload"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory stand-in for the postgres repositories with
// snapshot-based transaction semantics: ExecTx snapshots the store, runs
// the function, and restores the snapshot on error. That mirrors the
// all-or-nothing visibility the real TransactionManager provides.
type fakeStore struct {
	mu sync.Mutex

	projects   map[int64]models.Project
	files      map[int64]models.ProjectFile
	additional map[int64]models.AdditionalFile
	sessions   map[int64]models.UploadSession

	nextProjectID    int64
	nextFileID       int64
	nextAdditionalID int64
	nextSessionID    int64

	// failFileCreateAt fails the Nth file create (1-based); 0 disables.
	failFileCreateAt int
	fileCreates      int

	failSessionUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects:   map[int64]models.Project{},
		files:      map[int64]models.ProjectFile{},
		additional: map[int64]models.AdditionalFile{},
		sessions:   map[int64]models.UploadSession{},
	}
}

func (s *fakeStore) fileCountForProject(projectID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.files {
		if f.ProjectID == projectID {
			n++
		}
	}
	return n
}

func (s *fakeStore) projectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

func (s *fakeStore) fileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type storeSnapshot struct {
	projects map[int64]models.Project
	files    map[int64]models.ProjectFile
	sessions map[int64]models.UploadSession
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		projects: make(map[int64]models.Project, len(s.projects)),
		files:    make(map[int64]models.ProjectFile, len(s.files)),
		sessions: make(map[int64]models.UploadSession, len(s.sessions)),
	}
	for k, v := range s.projects {
		snap.projects[k] = v
	}
	for k, v := range s.files {
		snap.files[k] = v
	}
	for k, v := range s.sessions {
		snap.sessions[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = snap.projects
	s.files = snap.files
	s.sessions = snap.sessions
}

// fakeTxManager rolls the store back on error.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeProjectRepo struct {
	store *fakeStore
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextProjectID++
	project.ID = r.store.nextProjectID
	project.UUID = uuid.NewString()
	r.store.projects[project.ID] = *project
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *fakeProjectRepo) List(ctx context.Context, opts models.ProjectListOptions) ([]models.ProjectSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	summaries := []models.ProjectSummary{}
	for _, p := range r.store.projects {
		if opts.UploadMethod != nil && p.UploadMethod != *opts.UploadMethod {
			continue
		}
		summaries = append(summaries, models.ProjectSummary{
			ID:           p.ID,
			UUID:         p.UUID,
			Name:         p.Name,
			UploadMethod: p.UploadMethod,
			UploadStatus: p.UploadStatus,
			TotalSize:    p.FileSize,
			CreatedAt:    p.CreatedAt,
		})
	}
	return summaries, nil
}

func (r *fakeProjectRepo) UpdateStatus(ctx context.Context, id int64, status models.UploadStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.projects[id]
	if !ok {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	p.UploadStatus = status
	r.store.projects[id] = p
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.projects[id]; !ok {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	delete(r.store.projects, id)
	for fid, f := range r.store.files {
		if f.ProjectID == id {
			delete(r.store.files, fid)
		}
	}
	for fid, f := range r.store.additional {
		if f.ProjectID == id {
			delete(r.store.additional, fid)
		}
	}
	return nil
}

type fakeFileRepo struct {
	store *fakeStore
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.ProjectFile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.fileCreates++
	if r.store.failFileCreateAt > 0 && r.store.fileCreates == r.store.failFileCreateAt {
		return fmt.Errorf("simulated write failure")
	}
	r.store.nextFileID++
	file.ID = r.store.nextFileID
	r.store.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) ListByProject(ctx context.Context, projectID int64) ([]models.ProjectFile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	files := []models.ProjectFile{}
	for id := int64(1); id <= r.store.nextFileID; id++ {
		if f, ok := r.store.files[id]; ok && f.ProjectID == projectID {
			files = append(files, f)
		}
	}
	return files, nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.UploadSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextSessionID++
	session.ID = r.store.nextSessionID
	r.store.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.UploadSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if s.SessionID == sessionID {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("upload session %s: %w", sessionID, domain.ErrNotFound)
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *models.UploadSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failSessionUpdate {
		return fmt.Errorf("simulated session update failure")
	}
	if _, ok := r.store.sessions[session.ID]; !ok {
		return fmt.Errorf("upload session %s: %w", session.SessionID, domain.ErrNotFound)
	}
	r.store.sessions[session.ID] = *session
	return nil
}

type fakeAdditionalFileRepo struct {
	store *fakeStore
}

func (r *fakeAdditionalFileRepo) Create(ctx context.Context, file *models.AdditionalFile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.projects[file.ProjectID]; !ok {
		return fmt.Errorf("project %d: %w", file.ProjectID, domain.ErrNotFound)
	}
	r.store.nextAdditionalID++
	file.ID = r.store.nextAdditionalID
	file.UUID = uuid.NewString()
	r.store.additional[file.ID] = *file
	return nil
}

func (r *fakeAdditionalFileRepo) GetByID(ctx context.Context, projectID, fileID int64) (*models.AdditionalFile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.additional[fileID]
	if !ok || f.ProjectID != projectID {
		return nil, fmt.Errorf("additional file %d in project %d: %w", fileID, projectID, domain.ErrNotFound)
	}
	return &f, nil
}

func (r *fakeAdditionalFileRepo) ListByProject(ctx context.Context, projectID int64) ([]models.AdditionalFile, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	files := []models.AdditionalFile{}
	for id := int64(1); id <= r.store.nextAdditionalID; id++ {
		if f, ok := r.store.additional[id]; ok && f.ProjectID == projectID {
			f.Content = nil
			files = append(files, f)
		}
	}
	return files, nil
}

func (r *fakeAdditionalFileRepo) UpdateDescription(ctx context.Context, projectID, fileID int64, description *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.additional[fileID]
	if !ok || f.ProjectID != projectID {
		return fmt.Errorf("additional file %d in project %d: %w", fileID, projectID, domain.ErrNotFound)
	}
	f.Description = description
	r.store.additional[fileID] = f
	return nil
}

func (r *fakeAdditionalFileRepo) Delete(ctx context.Context, projectID, fileID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f, ok := r.store.additional[fileID]
	if !ok || f.ProjectID != projectID {
		return fmt.Errorf("additional file %d in project %d: %w", fileID, projectID, domain.ErrNotFound)
	}
	delete(r.store.additional, fileID)
	return nil
}

// fakeParserClient returns a canned response or error.
type fakeParserClient struct {
	resp  *uploadSvc.ParseResponse
	err   error
	calls int
}

func (c *fakeParserClient) Parse(ctx context.Context, req *uploadSvc.ParseRequest) (*uploadSvc.ParseResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func (c *fakeParserClient) Health(ctx context.Context) error {
	return c.err
}
