package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/auth"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/quota"
)

// NoteService orchestrates tenant-scoped note CRUD. Every store query it
// issues filters on the tenant id taken from the resolved principal; a note
// id from another tenant is indistinguishable from a nonexistent one.
type NoteService struct {
	db *gorm.DB
}

// NewNoteService creates a NoteService backed by the given store
func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// NoteFilter narrows a note listing
type NoteFilter struct {
	Search string
	Tags   []string
}

// NoteInput carries the client-supplied fields of a new note. Tenant and
// author ids are never part of it.
type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NotePatch carries the fields of a merge-patch update; nil fields are left
// untouched.
type NotePatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"is_pinned"`
}

// List returns the tenant's notes, pinned first, then most recently updated.
// Search matches case-insensitively against title or content; tags match
// notes carrying at least one of the given tags.
func (s *NoteService) List(ctx context.Context, p *auth.Principal, filter NoteFilter) ([]model.Note, error) {
	if err := auth.Authorize(p, auth.ActionReadNotes); err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).Where("tenant_id = ?", p.Tenant.ID)
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var notes []model.Note
	if result := query.Order("is_pinned DESC, updated_at DESC").Find(&notes); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}

	if len(filter.Tags) > 0 {
		notes = filterByTags(notes, filter.Tags)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// filterByTags keeps notes whose tag set intersects the requested tags.
// Tags live in a JSON column, so the intersection happens here rather than
// in the store query.
func filterByTags(notes []model.Note, tags []string) []model.Note {
	wanted := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t != "" {
			wanted[t] = true
		}
	}

	filtered := make([]model.Note, 0, len(notes))
	for _, note := range notes {
		for _, t := range note.Tags {
			if wanted[t] {
				filtered = append(filtered, note)
				break
			}
		}
	}
	return filtered
}

// Create validates the input, applies the note quota, and inserts the note.
// Author, tenant, and pin state are fixed server-side.
func (s *NoteService) Create(ctx context.Context, p *auth.Principal, in NoteInput) (*model.Note, error) {
	if err := auth.Authorize(p, auth.ActionCreateNote); err != nil {
		return nil, err
	}

	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}
	if err := validateTags(in.Tags); err != nil {
		return nil, err
	}

	count, err := s.CountForTenant(ctx, p.Tenant.ID)
	if err != nil {
		return nil, err
	}
	if err := quota.CheckNoteQuota(&p.Tenant, count); err != nil {
		return nil, err
	}

	note := model.Note{
		Title:    in.Title,
		Content:  in.Content,
		Tags:     in.Tags,
		TenantID: p.Tenant.ID,
		UserID:   p.User.ID,
		IsPinned: false,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if result := s.db.WithContext(ctx).Create(&note); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	return &note, nil
}

// Get returns a single note from the principal's tenant
func (s *NoteService) Get(ctx context.Context, p *auth.Principal, id uint) (*model.Note, error) {
	if err := auth.Authorize(p, auth.ActionReadNotes); err != nil {
		return nil, err
	}
	return s.findInTenant(ctx, p, id)
}

// Update merge-patches the supplied fields and refreshes the update time
func (s *NoteService) Update(ctx context.Context, p *auth.Principal, id uint, patch NotePatch) (*model.Note, error) {
	if err := auth.Authorize(p, auth.ActionUpdateNote); err != nil {
		return nil, err
	}

	note, err := s.findInTenant(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		if err := validateContent(*patch.Content); err != nil {
			return nil, err
		}
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		if err := validateTags(*patch.Tags); err != nil {
			return nil, err
		}
		note.Tags = *patch.Tags
	}
	if patch.IsPinned != nil {
		note.IsPinned = *patch.IsPinned
	}

	if result := s.db.WithContext(ctx).Save(note); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	return note, nil
}

// Delete permanently removes a note. Admins may delete any note in their
// tenant, members only their own.
func (s *NoteService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	if err := auth.Authorize(p, auth.ActionDeleteNote); err != nil {
		return err
	}

	note, err := s.findInTenant(ctx, p, id)
	if err != nil {
		return err
	}
	if err := auth.CanDeleteNote(p, note); err != nil {
		return err
	}

	if result := s.db.WithContext(ctx).Delete(note); result.Error != nil {
		return apperr.Internal(result.Error)
	}
	return nil
}

// TogglePin flips the pin flag and refreshes the update time
func (s *NoteService) TogglePin(ctx context.Context, p *auth.Principal, id uint) (*model.Note, error) {
	if err := auth.Authorize(p, auth.ActionPinNote); err != nil {
		return nil, err
	}

	note, err := s.findInTenant(ctx, p, id)
	if err != nil {
		return nil, err
	}

	note.IsPinned = !note.IsPinned
	if result := s.db.WithContext(ctx).Save(note); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	return note, nil
}

// CountForTenant returns the number of notes the tenant currently holds
func (s *NoteService) CountForTenant(ctx context.Context, tenantID uint) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&model.Note{}).Where("tenant_id = ?", tenantID).Count(&count)
	if result.Error != nil {
		return 0, apperr.Internal(result.Error)
	}
	return count, nil
}

func (s *NoteService) findInTenant(ctx context.Context, p *auth.Principal, id uint) (*model.Note, error) {
	var note model.Note
	result := s.db.WithContext(ctx).Where("id = ? AND tenant_id = ?", id, p.Tenant.ID).First(&note)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("note not found")
		}
		return nil, apperr.Internal(result.Error)
	}
	return &note, nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperr.Validation("title is required")
	}
	if len(title) > model.MaxTitleLength {
		return apperr.Validation(fmt.Sprintf("title must be at most %d characters", model.MaxTitleLength))
	}
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return apperr.Validation("content is required")
	}
	if len(content) > model.MaxContentLength {
		return apperr.Validation(fmt.Sprintf("content must be at most %d characters", model.MaxContentLength))
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > model.MaxTagsPerNote {
		return apperr.Validation(fmt.Sprintf("at most %d tags per note", model.MaxTagsPerNote))
	}
	for _, tag := range tags {
		if tag == "" {
			return apperr.Validation("tags must not be empty")
		}
		if len(tag) > model.MaxTagLength {
			return apperr.Validation(fmt.Sprintf("tags must be at most %d characters", model.MaxTagLength))
		}
	}
	return nil
}
