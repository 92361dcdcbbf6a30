package store

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"art-gallery-backend/internal/apperr"
	"art-gallery-backend/internal/models"
)

// MockRepository is an in-memory Repository for tests. It mirrors the
// constraint and ordering behavior of the Postgres store.
type MockRepository struct {
	mu sync.RWMutex

	users      map[int64]*models.User
	categories map[int64]*models.Category
	paintings  map[int64]*models.Painting
	ratings    map[int64]*models.Rating
	comments   map[int64]*models.Comment
	nextID     int64

	// Error injection for testing error paths
	ErrorOnNextCall error
}

func NewMockRepository() *MockRepository {
	m := &MockRepository{}
	m.Reset()
	return m
}

var _ Repository = (*MockRepository)(nil)

// Reset clears all data in the mock repository.
func (m *MockRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = make(map[int64]*models.User)
	m.categories = make(map[int64]*models.Category)
	m.paintings = make(map[int64]*models.Painting)
	m.ratings = make(map[int64]*models.Rating)
	m.comments = make(map[int64]*models.Comment)
	m.nextID = 0
	m.ErrorOnNextCall = nil
}

// checkError returns and clears any injected error.
func (m *MockRepository) checkError() error {
	if m.ErrorOnNextCall != nil {
		err := m.ErrorOnNextCall
		m.ErrorOnNextCall = nil
		return err
	}
	return nil
}

func (m *MockRepository) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *MockRepository) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checkError()
}

// Users

func (m *MockRepository) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	if err := m.userConflict(u); err != nil {
		return err
	}
	u.ID = m.id()
	u.CreatedAt = time.Now().UTC()
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *MockRepository) userConflict(u *models.User) error {
	for _, existing := range m.users {
		if existing.ID == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return apperr.Conflict("%s", conflictMessages["users_email_key"])
		}
		if existing.Username == u.Username {
			return apperr.Conflict("%s", conflictMessages["users_username_key"])
		}
	}
	return nil
}

func (m *MockRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	out := *u
	return &out, nil
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.Username == username })
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findUser(func(u *models.User) bool { return u.Email == email })
}

func (m *MockRepository) findUser(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if match(u) {
			out := *u
			return &out, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (m *MockRepository) UpdateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	existing, ok := m.users[u.ID]
	if !ok {
		return apperr.NotFound("user not found")
	}
	if err := m.userConflict(u); err != nil {
		return err
	}
	now := time.Now().UTC()
	existing.Email = u.Email
	existing.Username = u.Username
	existing.FullName = u.FullName
	existing.Bio = u.Bio
	existing.ProfilePicture = u.ProfilePicture
	existing.UpdatedAt = &now
	u.UpdatedAt = &now
	return nil
}

// Categories

func (m *MockRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return apperr.Conflict("%s", conflictMessages["categories_name_key"])
		}
	}
	c.ID = m.id()
	c.CreatedAt = time.Now().UTC()
	stored := *c
	m.categories[c.ID] = &stored
	return nil
}

func (m *MockRepository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	c, ok := m.categories[id]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	out := *c
	return &out, nil
}

func (m *MockRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	for _, c := range m.categories {
		if c.Name == name {
			out := *c
			return &out, nil
		}
	}
	return nil, apperr.NotFound("category not found")
}

func (m *MockRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Paintings

func (m *MockRepository) CreatePainting(ctx context.Context, p *models.Painting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	if _, ok := m.users[p.ArtistID]; !ok {
		return apperr.Internal(nil, "painting artist does not exist")
	}
	p.ID = m.id()
	p.CreatedAt = time.Now().UTC()
	p.ViewCount, p.AverageRating, p.RatingCount = 0, 0, 0
	stored := *p
	stored.Artist, stored.Category = nil, nil
	m.paintings[p.ID] = &stored
	return nil
}

func (m *MockRepository) GetPainting(ctx context.Context, id int64) (*models.Painting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	p, ok := m.paintings[id]
	if !ok {
		return nil, apperr.NotFound("painting not found")
	}
	out := m.withRelations(p)
	return &out, nil
}

func (m *MockRepository) withRelations(p *models.Painting) models.Painting {
	out := *p
	if artist, ok := m.users[p.ArtistID]; ok {
		a := *artist
		out.Artist = &a
	}
	if p.CategoryID != nil {
		if category, ok := m.categories[*p.CategoryID]; ok {
			c := *category
			out.Category = &c
		}
	}
	return out
}

func (m *MockRepository) ListPaintings(ctx context.Context, params PaintingListParams) ([]models.Painting, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, 0, err
	}

	var matched []*models.Painting
	for _, p := range m.paintings {
		if matchesFilters(p, params.Filters) {
			matched = append(matched, p)
		}
	}
	less := paintingLess(params.Sort)
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	total := len(matched)
	out := []models.Painting{}
	for i := max(params.Offset, 0); i < total && len(out) < params.Limit; i++ {
		out = append(out, m.withRelations(matched[i]))
	}
	return out, total, nil
}

func matchesFilters(p *models.Painting, f models.PaintingFilters) bool {
	if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
		return false
	}
	if f.ArtistID != nil && p.ArtistID != *f.ArtistID {
		return false
	}
	if f.MinPrice != nil && (p.Price == nil || *p.Price < *f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && (p.Price == nil || *p.Price > *f.MaxPrice) {
		return false
	}
	if f.YearCreated != nil && (p.YearCreated == nil || *p.YearCreated != *f.YearCreated) {
		return false
	}
	if f.MinRating != nil && p.AverageRating < *f.MinRating {
		return false
	}
	if f.Tags != nil && *f.Tags != "" && (p.Tags == nil || !strings.Contains(*p.Tags, *f.Tags)) {
		return false
	}
	if f.Search != nil && *f.Search != "" {
		needle := strings.ToLower(*f.Search)
		inTitle := strings.Contains(strings.ToLower(p.Title), needle)
		inDescription := p.Description != nil && strings.Contains(strings.ToLower(*p.Description), needle)
		if !inTitle && !inDescription {
			return false
		}
	}
	return true
}

// paintingLess mirrors paintingOrder, including NULLS LAST for price.
func paintingLess(opt models.SortOption) func(a, b *models.Painting) bool {
	byID := func(a, b *models.Painting, asc bool) bool {
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	}
	switch opt {
	case models.SortOldest:
		return func(a, b *models.Painting) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return byID(a, b, true)
		}
	case models.SortPriceLow, models.SortPriceHigh:
		asc := opt == models.SortPriceLow
		return func(a, b *models.Painting) bool {
			switch {
			case a.Price == nil && b.Price == nil:
				return byID(a, b, asc)
			case a.Price == nil:
				return false
			case b.Price == nil:
				return true
			case *a.Price != *b.Price:
				return (*a.Price < *b.Price) == asc
			}
			return byID(a, b, asc)
		}
	case models.SortRatingHigh, models.SortRatingLow:
		asc := opt == models.SortRatingLow
		return func(a, b *models.Painting) bool {
			if a.AverageRating != b.AverageRating {
				return (a.AverageRating < b.AverageRating) == asc
			}
			return byID(a, b, asc)
		}
	case models.SortMostViewed:
		return func(a, b *models.Painting) bool {
			if a.ViewCount != b.ViewCount {
				return a.ViewCount > b.ViewCount
			}
			return byID(a, b, false)
		}
	case models.SortTitleAZ, models.SortTitleZA:
		asc := opt == models.SortTitleAZ
		return func(a, b *models.Painting) bool {
			if a.Title != b.Title {
				return (a.Title < b.Title) == asc
			}
			return byID(a, b, asc)
		}
	default:
		return func(a, b *models.Painting) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return byID(a, b, false)
		}
	}
}

func (m *MockRepository) UpdatePainting(ctx context.Context, p *models.Painting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	existing, ok := m.paintings[p.ID]
	if !ok {
		return apperr.NotFound("painting not found")
	}
	now := time.Now().UTC()
	existing.Title = p.Title
	existing.Description = p.Description
	existing.CategoryID = p.CategoryID
	existing.Price = p.Price
	existing.YearCreated = p.YearCreated
	existing.Dimensions = p.Dimensions
	existing.Medium = p.Medium
	existing.Status = p.Status
	existing.Tags = p.Tags
	existing.UpdatedAt = &now
	p.UpdatedAt = &now
	return nil
}

// DeletePainting cascades to the painting's ratings and comments.
func (m *MockRepository) DeletePainting(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	if _, ok := m.paintings[id]; !ok {
		return apperr.NotFound("painting not found")
	}
	delete(m.paintings, id)
	for rid, r := range m.ratings {
		if r.PaintingID == id {
			delete(m.ratings, rid)
		}
	}
	for cid, c := range m.comments {
		if c.PaintingID == id {
			delete(m.comments, cid)
		}
	}
	return nil
}

func (m *MockRepository) IncrementViewCount(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	p, ok := m.paintings[id]
	if !ok {
		return apperr.NotFound("painting not found")
	}
	p.ViewCount++
	return nil
}

// Ratings

func (m *MockRepository) UpsertRating(ctx context.Context, userID, paintingID int64, value int) (*models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	p, ok := m.paintings[paintingID]
	if !ok {
		return nil, apperr.NotFound("painting not found")
	}

	var stored *models.Rating
	for _, r := range m.ratings {
		if r.UserID == userID && r.PaintingID == paintingID {
			stored = r
			break
		}
	}
	if stored == nil {
		stored = &models.Rating{ID: m.id(), UserID: userID, PaintingID: paintingID, CreatedAt: time.Now().UTC()}
		m.ratings[stored.ID] = stored
	} else {
		now := time.Now().UTC()
		stored.UpdatedAt = &now
	}
	stored.Rating = value

	sum, count := 0, 0
	for _, r := range m.ratings {
		if r.PaintingID == paintingID {
			sum += r.Rating
			count++
		}
	}
	p.RatingCount = count
	p.AverageRating = math.Round(float64(sum)/float64(count)*100) / 100

	out := *stored
	return &out, nil
}

func (m *MockRepository) GetRating(ctx context.Context, userID, paintingID int64) (*models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	for _, r := range m.ratings {
		if r.UserID == userID && r.PaintingID == paintingID {
			out := *r
			if u, ok := m.users[userID]; ok {
				user := *u
				out.User = &user
			}
			return &out, nil
		}
	}
	return nil, apperr.NotFound("rating not found")
}

// Comments

func (m *MockRepository) CreateComment(ctx context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	c.ID = m.id()
	c.CreatedAt = time.Now().UTC()
	stored := *c
	stored.User = nil
	m.comments[c.ID] = &stored
	return nil
}

func (m *MockRepository) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}
	c, ok := m.comments[id]
	if !ok {
		return nil, apperr.NotFound("comment not found")
	}
	out := *c
	return &out, nil
}

func (m *MockRepository) ListComments(ctx context.Context, params CommentListParams) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return nil, err
	}

	var matched []*models.Comment
	for _, c := range m.comments {
		if c.PaintingID != params.PaintingID || !c.IsApproved {
			continue
		}
		if params.ParentID == nil && c.ParentID != nil {
			continue
		}
		if params.ParentID != nil && (c.ParentID == nil || *c.ParentID != *params.ParentID) {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	out := []models.Comment{}
	for i := max(params.Offset, 0); i < len(matched) && len(out) < params.Limit; i++ {
		c := *matched[i]
		if u, ok := m.users[c.UserID]; ok {
			user := *u
			c.User = &user
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MockRepository) UpdateComment(ctx context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	existing, ok := m.comments[c.ID]
	if !ok {
		return apperr.NotFound("comment not found")
	}
	now := time.Now().UTC()
	existing.Content = c.Content
	existing.UpdatedAt = &now
	c.UpdatedAt = &now
	return nil
}

// DeleteComment cascades to replies.
func (m *MockRepository) DeleteComment(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkError(); err != nil {
		return err
	}
	if _, ok := m.comments[id]; !ok {
		return apperr.NotFound("comment not found")
	}
	m.deleteCommentTree(id)
	return nil
}

func (m *MockRepository) deleteCommentTree(id int64) {
	delete(m.comments, id)
	for cid, c := range m.comments {
		if c.ParentID != nil && *c.ParentID == id {
			m.deleteCommentTree(cid)
		}
	}
}
