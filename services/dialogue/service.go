// File: services/dialogue/service.go
package dialogue

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	conversationRepo "farewise/database/repository/conversation"
	"farewise/models"
	"farewise/services/ai"
	"farewise/services/search"
	"farewise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationService runs the multi-turn dialogue that accumulates a travel
// intent and turns it into search results.
type ConversationService interface {
	Advance(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	GetSession(ctx context.Context, id string) (*models.ConversationSession, error)
	Reset(ctx context.Context, id string) error
}

// IntentExtractor is the slice of the extraction service the dialogue needs.
type IntentExtractor interface {
	Extract(ctx context.Context, utterance string, prior models.TravelIntent) (models.TravelIntent, error)
}

// sessionLockStripes bounds the memory spent on per-session serialization;
// sessions come and go but the stripe set never grows.
const sessionLockStripes = 64

// DefaultConversationService implements ConversationService. Turns within
// one session are serialized; a turn arriving while that session's search is
// still running cancels the stale search first.
type DefaultConversationService struct {
	Store     SessionStore
	Extractor IntentExtractor
	Search    search.Service
	Phraser   ai.ReplyPhraser
	Records   conversationRepo.TranscriptRepository

	mu       sync.Mutex
	locks    [sessionLockStripes]sync.Mutex
	inflight map[string]context.CancelFunc
}

func NewConversationService(
	store SessionStore,
	extractor IntentExtractor,
	searchSvc search.Service,
	phraser ai.ReplyPhraser,
	records conversationRepo.TranscriptRepository,
) *DefaultConversationService {
	return &DefaultConversationService{
		Store:     store,
		Extractor: extractor,
		Search:    searchSvc,
		Phraser:   phraser,
		Records:   records,
		inflight:  make(map[string]context.CancelFunc),
	}
}

var affirmations = []string{
	"yes", "yeah", "yep", "correct", "ok", "okay", "sure", "confirm",
	"go ahead", "search", "find flights", "looks good", "that's right", "proceed",
}

var negations = []string{"no", "nope", "wrong", "not quite", "don't", "cancel"}

var retryPhrases = []string{"try again", "retry", "search again"}

func matchesAny(utterance string, phrases []string) bool {
	text := " " + strings.ToLower(strings.TrimSpace(utterance)) + " "
	for _, p := range phrases {
		if strings.Contains(text, " "+p+" ") {
			return true
		}
	}
	return false
}

// Advance runs one dialogue turn. The session lock is taken before the
// session is loaded so two concurrent turns can never merge into the same
// stale snapshot and lose each other's slots.
func (s *DefaultConversationService) Advance(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	id := req.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	s.cancelInflight(id)

	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.loadOrCreate(ctx, req.SessionID, id)
	if err != nil {
		return nil, err
	}

	resp := s.step(ctx, session, req.Text)

	session.Turn++
	session.UpdatedAt = time.Now()
	if err := s.Store.Set(ctx, session); err != nil {
		return nil, err
	}

	resp.SessionID = session.ID
	resp.State = session.State
	resp.Intent = session.Intent
	resp.Missing = session.Intent.MissingSlots()
	resp.Reply = s.Phraser.Phrase(ctx, resp.Reply)

	s.record(session, req.Text, resp)
	return resp, nil
}

// step decides what this turn does based on the session state. It mutates
// the session and returns the partially filled response; Advance finishes
// the bookkeeping.
func (s *DefaultConversationService) step(ctx context.Context, session *models.ConversationSession, utterance string) *models.ChatResponse {
	switch session.State {
	case models.StateConfirming:
		if matchesAny(utterance, affirmations) {
			return s.runSearch(ctx, session)
		}
		if matchesAny(utterance, negations) {
			session.State = models.StateModifying
			session.LastAsked = ""
			return &models.ChatResponse{
				Kind:  models.KindQuestion,
				Reply: "No problem. What would you like to change?",
			}
		}
		// Anything else on the confirmation turn is treated as a revision.
		return s.absorb(ctx, session, utterance)

	case models.StateError:
		if matchesAny(utterance, retryPhrases) || matchesAny(utterance, affirmations) {
			return s.runSearch(ctx, session)
		}
		return s.absorb(ctx, session, utterance)

	default:
		// gathering, presenting, modifying
		return s.absorb(ctx, session, utterance)
	}
}

// absorb extracts intent from the utterance, merges it into the session and
// moves the dialogue forward: ask the next missing slot, or confirm when the
// intent became complete.
func (s *DefaultConversationService) absorb(ctx context.Context, session *models.ConversationSession, utterance string) *models.ChatResponse {
	prior := session.Intent.Clone()
	extracted, err := s.Extractor.Extract(ctx, utterance, prior)
	if err != nil {
		utils.GetLogger().Error("intent extraction failed",
			zap.String("session", session.ID), zap.Error(err))
		session.State = models.StateError
		return &models.ChatResponse{
			Kind:  models.KindError,
			Reply: "Sorry, I had trouble understanding that. Could you rephrase?",
		}
	}

	// A turn made while modifying is a revision by definition; otherwise the
	// utterance must carry a correction signal for settled slots to move.
	correction := isCorrection(utterance) || session.State == models.StateModifying
	session.Intent = mergeIntent(prior, extracted, correction)

	if session.Intent.Complete() {
		session.State = models.StateConfirming
		session.LastAsked = ""
		return &models.ChatResponse{
			Kind:  models.KindConfirmation,
			Reply: summarizeIntent(session.Intent),
		}
	}

	missing := session.Intent.MissingSlots()
	next := missing[0]
	reply := questionFor(next, session.LastAsked)
	session.State = models.StateGathering
	session.LastAsked = next
	return &models.ChatResponse{
		Kind:  models.KindQuestion,
		Reply: reply,
	}
}

// runSearch executes the flight search for a complete intent. The search
// context is registered so a newer turn for the same session can cancel it.
func (s *DefaultConversationService) runSearch(ctx context.Context, session *models.ConversationSession) *models.ChatResponse {
	session.State = models.StateSearching

	searchCtx, cancel := context.WithCancel(ctx)
	s.registerInflight(session.ID, cancel)
	defer s.clearInflight(session.ID, cancel)

	intent := session.Intent.Clone()
	intent.ApplyDefaults()
	result, err := s.Search.ExecuteSearch(searchCtx, intent)
	if err != nil {
		return s.searchFailed(session, err)
	}

	session.State = models.StatePresenting
	return &models.ChatResponse{
		Kind:             models.KindResults,
		Reply:            summarizeResults(len(result.Flights), result.ProviderFailures),
		Flights:          result.Flights,
		ProviderFailures: result.ProviderFailures,
	}
}

func (s *DefaultConversationService) searchFailed(session *models.ConversationSession, err error) *models.ChatResponse {
	var precondition *search.PreconditionError
	if errors.As(err, &precondition) {
		session.State = models.StateGathering
		next := precondition.Missing[0]
		session.LastAsked = next
		return &models.ChatResponse{
			Kind:  models.KindQuestion,
			Reply: questionFor(next, ""),
		}
	}

	if errors.Is(err, context.Canceled) {
		session.State = models.StateGathering
		return &models.ChatResponse{
			Kind:  models.KindQuestion,
			Reply: "I stopped that search. What would you like to do instead?",
		}
	}

	utils.GetLogger().Warn("flight search failed",
		zap.String("session", session.ID), zap.Error(err))
	session.State = models.StateError
	if errors.Is(err, search.ErrNoProvidersAvailable) {
		return &models.ChatResponse{
			Kind:  models.KindError,
			Reply: "None of the airlines answered just now. Say 'try again' and I'll retry the search.",
		}
	}
	return &models.ChatResponse{
		Kind:  models.KindError,
		Reply: "Something went wrong while searching. Say 'try again' to retry.",
	}
}

// GetSession returns a session by ID.
func (s *DefaultConversationService) GetSession(ctx context.Context, id string) (*models.ConversationSession, error) {
	return s.Store.Get(ctx, id)
}

// Reset discards a session and its transcript.
func (s *DefaultConversationService) Reset(ctx context.Context, id string) error {
	s.cancelInflight(id)
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	if s.Records != nil {
		if err := s.Records.DeleteBySessionID(ctx, id); err != nil {
			utils.GetLogger().Warn("failed to delete transcript",
				zap.String("session", id), zap.Error(err))
		}
	}
	return nil
}

// loadOrCreate fetches the requested session, or starts a fresh one under
// freshID. An unknown or expired ID also starts fresh, with a new identity
// so the caller learns the old conversation is gone.
func (s *DefaultConversationService) loadOrCreate(ctx context.Context, requested, freshID string) (*models.ConversationSession, error) {
	if requested != "" {
		session, err := s.Store.Get(ctx, requested)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		freshID = uuid.New().String()
	}
	return &models.ConversationSession{
		ID:    freshID,
		State: models.StateGathering,
	}, nil
}

// record persists the turn transcript. Persistence is best effort; a Mongo
// hiccup never fails the user's turn.
func (s *DefaultConversationService) record(session *models.ConversationSession, utterance string, resp *models.ChatResponse) {
	if s.Records == nil {
		return
	}
	rec := models.TurnRecord{
		SessionID: session.ID,
		Turn:      session.Turn,
		Utterance: utterance,
		Reply:     resp.Reply,
		Kind:      resp.Kind,
		CreatedAt: time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Records.Append(ctx, rec); err != nil {
			utils.GetLogger().Warn("failed to record turn",
				zap.String("session", rec.SessionID), zap.Error(err))
		}
	}()
}

// sessionLock maps a session ID onto a fixed stripe of mutexes. Unrelated
// sessions sharing a stripe briefly serialize, which is harmless.
func (s *DefaultConversationService) sessionLock(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.locks[h.Sum32()%sessionLockStripes]
}

func (s *DefaultConversationService) registerInflight(id string, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[id] = cancel
}

func (s *DefaultConversationService) clearInflight(id string, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

func (s *DefaultConversationService) cancelInflight(id string) {
	s.mu.Lock()
	cancel, ok := s.inflight[id]
	s.mu.Unlock()
	if ok {
		cancel()
	}
}
