package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elearn-backend/internal/domains/course/model"
	"elearn-backend/internal/ordering"
)

type fakeRepo struct {
	courses     map[uuid.UUID]*model.Course
	invalidated []uuid.UUID
}

func newFakeRepo(courses ...*model.Course) *fakeRepo {
	r := &fakeRepo{courses: make(map[uuid.UUID]*model.Course)}
	for _, c := range courses {
		r.courses[c.ID] = c
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, entity *model.Course) (*model.Course, error) {
	r.courses[entity.ID] = entity
	return entity, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Course, error) {
	entity, ok := r.courses[id]
	if !ok {
		return nil, model.ErrCourseNotFound
	}
	cp := *entity
	return &cp, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Course, error) {
	var out []model.Course
	for _, c := range r.courses {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, entity *model.Course) (*model.Course, error) {
	r.courses[entity.ID] = entity
	return entity, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.courses[id]; !ok {
		return model.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeRepo) InvalidateOwnerCache(_ context.Context, ownerID uuid.UUID) error {
	r.invalidated = append(r.invalidated, ownerID)
	return nil
}

type fakeReorderer struct {
	applyScope string
	applyIDs   []string
	swapScope  string
	swapItem   string
	swapDir    ordering.Direction
	calls      int
}

func (f *fakeReorderer) ApplyExplicitOrder(_ context.Context, scopeKey string, desiredIDs []string) error {
	f.applyScope = scopeKey
	f.applyIDs = desiredIDs
	f.calls++
	return nil
}

func (f *fakeReorderer) SwapAdjacent(_ context.Context, scopeKey, itemID string, dir ordering.Direction) error {
	f.swapScope = scopeKey
	f.swapItem = itemID
	f.swapDir = dir
	f.calls++
	return nil
}

func TestCourseServiceCreateStartsUnpositioned(t *testing.T) {
	repo := newFakeRepo()
	svc := NewCourseService(repo, &fakeReorderer{})

	ownerID := uuid.New()
	created, err := svc.Create(context.Background(), ownerID, &model.CreateCourseRequest{
		Title: "Intro to Algebra",
	})
	require.NoError(t, err)

	assert.Equal(t, ordering.UnsetPosition, created.Position)
	assert.Equal(t, "intro-to-algebra", created.Slug)
	assert.Equal(t, ownerID, created.OwnerID)
}

func TestCourseServiceUpdateRegeneratesSlug(t *testing.T) {
	ownerID := uuid.New()
	course := &model.Course{ID: uuid.New(), OwnerID: ownerID, Title: "Old Title", Slug: "old-title"}
	repo := newFakeRepo(course)
	svc := NewCourseService(repo, &fakeReorderer{})

	title := "Brand New Title"
	updated, err := svc.Update(context.Background(), ownerID, course.ID, &model.UpdateCourseRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestCourseServiceReorderScopesByOwner(t *testing.T) {
	ownerID := uuid.New()
	course := &model.Course{ID: uuid.New(), OwnerID: ownerID}
	repo := newFakeRepo(course)
	reorderer := &fakeReorderer{}
	svc := NewCourseService(repo, reorderer)

	desired := []string{course.ID.String()}
	_, err := svc.Reorder(context.Background(), ownerID, desired)
	require.NoError(t, err)

	assert.Equal(t, ownerID.String(), reorderer.applyScope)
	assert.Equal(t, desired, reorderer.applyIDs)
	assert.Equal(t, []uuid.UUID{ownerID}, repo.invalidated, "reorder must drop the cached list")
}

func TestCourseServiceMoveRejectsForeignCourse(t *testing.T) {
	course := &model.Course{ID: uuid.New(), OwnerID: uuid.New()}
	repo := newFakeRepo(course)
	reorderer := &fakeReorderer{}
	svc := NewCourseService(repo, reorderer)

	_, err := svc.Move(context.Background(), uuid.New(), course.ID, ordering.DirectionUp)
	require.ErrorIs(t, err, model.ErrNotCourseOwner)
	assert.Zero(t, reorderer.calls, "ownership check must run before any position change")
}

func TestCourseServiceMoveScopesByOwner(t *testing.T) {
	ownerID := uuid.New()
	course := &model.Course{ID: uuid.New(), OwnerID: ownerID, Position: 2}
	repo := newFakeRepo(course)
	reorderer := &fakeReorderer{}
	svc := NewCourseService(repo, reorderer)

	_, err := svc.Move(context.Background(), ownerID, course.ID, ordering.DirectionDown)
	require.NoError(t, err)

	assert.Equal(t, ownerID.String(), reorderer.swapScope)
	assert.Equal(t, course.ID.String(), reorderer.swapItem)
	assert.Equal(t, ordering.DirectionDown, reorderer.swapDir)
}

func TestCourseServiceDeleteChecksOwnership(t *testing.T) {
	course := &model.Course{ID: uuid.New(), OwnerID: uuid.New()}
	repo := newFakeRepo(course)
	svc := NewCourseService(repo, &fakeReorderer{})

	err := svc.Delete(context.Background(), uuid.New(), course.ID)
	require.ErrorIs(t, err, model.ErrNotCourseOwner)

	_, err = repo.GetByID(context.Background(), course.ID)
	assert.NoError(t, err, "course must survive a rejected delete")
}
