package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/poetscorner/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultAutosaveDelay is how long input must stay quiet before a draft
// is saved automatically.
const DefaultAutosaveDelay = 5 * time.Second

// SaveFunc persists a draft; DraftService.SaveDraft satisfies it.
type SaveFunc func(ctx context.Context, userID string, input models.PostInput) (*models.Post, error)

// Autosaver debounces draft saves: every Note resets a per-post timer,
// and only when input has been quiet for the full delay does the save
// fire. At most one timer is pending per post. When a fire creates a
// post for a never-saved compose session (empty input ID), the new ID is
// remembered and injected into later notes so the session keeps updating
// that one draft instead of inserting duplicates. Save failures are
// logged and dropped; the next note opens a fresh debounce window.
type Autosaver struct {
	delay time.Duration
	save  SaveFunc
	log   *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	drafts map[string]string // compose slot -> post ID created by an earlier fire
}

// NewAutosaver creates an Autosaver firing save after delay of quiet.
func NewAutosaver(delay time.Duration, save SaveFunc, log *zap.Logger) *Autosaver {
	return &Autosaver{
		delay:  delay,
		save:   save,
		log:    log,
		timers: make(map[string]*time.Timer),
		drafts: make(map[string]string),
	}
}

// Note records an input event for a post, resetting its debounce timer.
// An input whose title or body is empty cancels the pending save: the
// user's latest keystrokes emptied the post, so nothing stale may fire.
func (a *Autosaver) Note(userID string, input models.PostInput) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if input.ID == "" {
		if id, ok := a.drafts[autosaveKey(userID, "")]; ok {
			input.ID = id
		}
	}
	key := autosaveKey(userID, input.ID)

	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Body) == "" {
		a.stopTimerLocked(key)
		return
	}

	if t, ok := a.timers[key]; ok {
		t.Stop()
	}
	a.timers[key] = time.AfterFunc(a.delay, func() {
		a.fire(key, userID, input)
	})
}

// Cancel drops any pending autosave for the post. Publish calls this
// before validating so a debounced save cannot land after the publish.
// Publishing also closes the compose session tied to the post, dropping
// the remembered draft ID.
func (a *Autosaver) Cancel(userID, postID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	composeKey := autosaveKey(userID, "")
	if postID == "" {
		if id, ok := a.drafts[composeKey]; ok {
			delete(a.drafts, composeKey)
			a.stopTimerLocked(autosaveKey(userID, id))
		}
		a.stopTimerLocked(composeKey)
		return
	}
	if a.drafts[composeKey] == postID {
		delete(a.drafts, composeKey)
		a.stopTimerLocked(composeKey)
	}
	a.stopTimerLocked(autosaveKey(userID, postID))
}

// Pending reports whether an autosave is scheduled for the post.
func (a *Autosaver) Pending(userID, postID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if postID == "" {
		if id, ok := a.drafts[autosaveKey(userID, "")]; ok {
			postID = id
		}
	}
	_, ok := a.timers[autosaveKey(userID, postID)]
	return ok
}

func (a *Autosaver) fire(key, userID string, input models.PostInput) {
	a.mu.Lock()
	delete(a.timers, key)
	a.mu.Unlock()

	post, err := a.save(context.Background(), userID, input)
	if err != nil {
		// Swallowed: the next debounce window retries with fresh input.
		a.log.Warn("autosave failed",
			zap.String("author_id", userID),
			zap.String("post_id", input.ID),
			zap.Error(err))
		return
	}

	if input.ID == "" {
		a.mu.Lock()
		a.drafts[autosaveKey(userID, "")] = post.ID.Hex()
		a.mu.Unlock()
	}
	a.log.Debug("autosaved draft",
		zap.String("author_id", userID),
		zap.String("post_id", post.ID.Hex()))
}

func (a *Autosaver) stopTimerLocked(key string) {
	if t, ok := a.timers[key]; ok {
		t.Stop()
		delete(a.timers, key)
	}
}

// autosaveKey scopes timers per author and post. An unsaved post (empty
// ID) shares one slot per author, matching one compose surface per user.
func autosaveKey(userID, postID string) string {
	return userID + "|" + postID
}
