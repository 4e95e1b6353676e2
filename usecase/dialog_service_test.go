package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/aeroassist/aero/domain/entities"
	"github.com/aeroassist/aero/domain/repositories"
	"github.com/aeroassist/aero/internal/audio"
)

type fakeSource struct {
	calls int
	limit int
}

func (f *fakeSource) Listen(ctx context.Context) (*entities.Utterance, error) {
	f.calls++
	if f.limit > 0 && f.calls > f.limit {
		return nil, errors.New("fake source exhausted")
	}
	return &entities.Utterance{
		Frames:     []entities.Frame{{Samples: make([]int16, audio.FrameSamples)}},
		SampleRate: audio.SampleRate,
		Channels:   audio.Channels,
	}, nil
}

type noSpeechSource struct{}

func (noSpeechSource) Listen(ctx context.Context) (*entities.Utterance, error) {
	return nil, audio.ErrNoSpeech
}

type seqTranscriber struct {
	texts []string
	next  int
}

func (s *seqTranscriber) Transcribe(ctx context.Context, pcm []byte, cfg repositories.AudioConfig) (string, error) {
	if s.next >= len(s.texts) {
		return "", errors.New("transcriber exhausted")
	}
	text := s.texts[s.next]
	s.next++
	return text, nil
}

type queueModel struct {
	replies []string
	err     error
	next    int
}

func (q *queueModel) Complete(ctx context.Context, prompt string) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if q.next >= len(q.replies) {
		return "continue", nil
	}
	reply := q.replies[q.next]
	q.next++
	return reply, nil
}

func (q *queueModel) Respond(ctx context.Context, system string, window entities.History, input string) (string, error) {
	return "canned response", nil
}

type memStore struct {
	saved   entities.History
	saves   int
	loadErr error
}

func (m *memStore) Load() (entities.History, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.saved, nil
}

func (m *memStore) Save(history entities.History) error {
	m.saved = append(entities.History{}, history...)
	m.saves++
	return nil
}

type recordingSpeaker struct {
	spoken []string
}

func (r *recordingSpeaker) Say(ctx context.Context, text string) error {
	r.spoken = append(r.spoken, text)
	return nil
}

type scriptedHandler struct {
	category entities.IntentCategory
	response *string
	err      error
	calls    int
}

func (h *scriptedHandler) Category() entities.IntentCategory { return h.category }

func (h *scriptedHandler) Handle(ctx context.Context, utterance string) (*string, error) {
	h.calls++
	return h.response, h.err
}

func newTestService(t *testing.T, transcripts []string, model *queueModel, store *memStore, speaker *recordingSpeaker) *DialogService {
	t.Helper()
	logger := zap.NewNop()
	listener := NewListener(&fakeSource{}, &seqTranscriber{texts: transcripts}, logger)
	service := NewDialogService(
		listener,
		NewExitGate(model, logger),
		NewIntentRouter(model, logger),
		speaker,
		store,
		10,
		logger,
	)
	return service
}

func strPtr(s string) *string { return &s }

func TestRunGoodbyeEndToEnd(t *testing.T) {
	store := &memStore{}
	speaker := &recordingSpeaker{}
	// Turn 1: exit gate says continue, router model says general.
	// Turn 2: exit gate says exit.
	model := &queueModel{replies: []string{"continue", "general", "exit"}}
	service := newTestService(t,
		[]string{"tell me something interesting", "goodbye for today"},
		model, store, speaker)

	general := &scriptedHandler{category: entities.CategoryGeneral, response: strPtr("Here is something interesting.")}
	service.Register(general)

	if err := service.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if general.calls != 1 {
		t.Errorf("Expected general handler to run once, got %d", general.calls)
	}
	if len(store.saved) != 4 {
		t.Fatalf("Expected 4 persisted turns, got %d", len(store.saved))
	}
	if store.saved[0].Role != entities.RoleUser || store.saved[3].Role != entities.RoleAssistant {
		t.Errorf("Unexpected turn roles: %+v", store.saved)
	}
	if store.saved[3].Content != farewellText {
		t.Errorf("Expected final turn to be the farewell, got %q", store.saved[3].Content)
	}
	// Greeting, handler response, farewell.
	if len(speaker.spoken) != 3 {
		t.Errorf("Expected 3 spoken lines, got %d: %v", len(speaker.spoken), speaker.spoken)
	}
	if speaker.spoken[0] != greetingText {
		t.Errorf("Expected greeting first, got %q", speaker.spoken[0])
	}
}

func TestRunClassifierDownFallsBackToGeneral(t *testing.T) {
	store := &memStore{}
	speaker := &recordingSpeaker{}
	model := &queueModel{err: errors.New("model unreachable")}
	service := newTestService(t,
		[]string{"tell me a story about the sea", "shut down the program"},
		model, store, speaker)

	general := &scriptedHandler{category: entities.CategoryGeneral, response: strPtr("Once upon a time...")}
	service.Register(general)

	if err := service.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if general.calls != 1 {
		t.Errorf("Expected general handler despite classifier outage, got %d calls", general.calls)
	}
	if len(store.saved) != 4 {
		t.Errorf("Expected 4 persisted turns, got %d", len(store.saved))
	}
}

func TestRunNilResponseNotLogged(t *testing.T) {
	store := &memStore{}
	speaker := &recordingSpeaker{}
	// Turn 1: continue + therapy. Turn 2: exit.
	model := &queueModel{replies: []string{"continue", "therapy", "exit"}}
	service := newTestService(t,
		[]string{"i need to talk about my week", "goodbye for now"},
		model, store, speaker)

	therapy := &scriptedHandler{category: entities.CategoryTherapy, response: nil}
	general := &scriptedHandler{category: entities.CategoryGeneral, response: strPtr("ok")}
	service.Register(therapy)
	service.Register(general)

	if err := service.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if therapy.calls != 1 {
		t.Errorf("Expected therapy handler to run once, got %d", therapy.calls)
	}
	// The therapy exchange stays out of history: only the final user turn
	// and the farewell remain.
	if len(store.saved) != 2 {
		t.Fatalf("Expected 2 persisted turns, got %d: %+v", len(store.saved), store.saved)
	}
	if store.saved[0].Content != "goodbye for now" {
		t.Errorf("Unexpected first persisted turn: %+v", store.saved[0])
	}
}

func TestRunHandlerErrorGetsFallbackReply(t *testing.T) {
	store := &memStore{}
	speaker := &recordingSpeaker{}
	model := &queueModel{replies: []string{"continue", "news", "exit"}}
	service := newTestService(t,
		[]string{"give me a story about the tides", "goodbye for now"},
		model, store, speaker)

	news := &scriptedHandler{category: entities.CategoryNews, err: errors.New("api down")}
	service.Register(news)

	if err := service.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.saved) != 4 {
		t.Fatalf("Expected 4 persisted turns, got %d", len(store.saved))
	}
	if store.saved[1].Content != fallbackReply {
		t.Errorf("Expected fallback reply logged, got %q", store.saved[1].Content)
	}
}

func TestRunContextCancellation(t *testing.T) {
	store := &memStore{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := newTestService(t, nil, &queueModel{}, store, &recordingSpeaker{})
	err := service.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if store.saves == 0 {
		t.Error("Expected history persisted on cancellation")
	}
}

func TestContextWindowCap(t *testing.T) {
	service := newTestService(t, nil, &queueModel{}, &memStore{}, &recordingSpeaker{})
	for i := 0; i < 30; i++ {
		service.history = service.history.Append(entities.NewTurn(entities.RoleUser, "q"))
		service.history = service.history.Append(entities.NewTurn(entities.RoleAssistant, "a"))
	}
	window := service.ContextWindow()
	if len(window) != 20 {
		t.Errorf("Expected window of 20 turns (10 pairs), got %d", len(window))
	}
}
