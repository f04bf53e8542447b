package declension

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derdiedas/backend/internal/domain"
	"github.com/derdiedas/backend/internal/provider/llm"
)

type mockProvider struct {
	CompleteFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
}

func (m *mockProvider) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (<-chan llm.Chunk, error) {
	panic("not used")
}

func (m *mockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return m.CompleteFunc(ctx, req)
}

func replyWith(content string) *mockProvider {
	return &mockProvider{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Content: content}, nil
		},
	}
}

func newTestService(provider llm.Provider) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), provider, 0)
}

const tuerReply = `{"cases":[
	{"case":"nominativ","article":"die","nounForm":"Tür"},
	{"case":"genitiv","article":"der","nounForm":"Türs"},
	{"case":"dativ","article":"der","nounForm":"Tür"},
	{"case":"akkusativ","article":"die","nounForm":"Tür"}
]}`

func TestDeclineFeminineGenitiveStripped(t *testing.T) {
	t.Parallel()

	svc := newTestService(replyWith(tuerReply))

	table, err := svc.Decline(context.Background(), Input{Lemma: "Tür", Gender: domain.GenderFeminine})
	require.NoError(t, err)
	require.Len(t, table.Cases, 4)

	gen := table.Genitiv()
	require.NotNil(t, gen)
	assert.Equal(t, "Tür", gen.NounForm, "feminine genitive -s must be stripped")
}

func TestDeclineMasculineGenitiveUntouched(t *testing.T) {
	t.Parallel()

	reply := `{"cases":[
		{"case":"nominativ","article":"der","nounForm":"Hund"},
		{"case":"genitiv","article":"des","nounForm":"Hundes"},
		{"case":"dativ","article":"dem","nounForm":"Hund"},
		{"case":"akkusativ","article":"den","nounForm":"Hund"}
	]}`
	svc := newTestService(replyWith(reply))

	table, err := svc.Decline(context.Background(), Input{Lemma: "Hund", Gender: domain.GenderMasculine})
	require.NoError(t, err)

	gen := table.Genitiv()
	require.NotNil(t, gen)
	assert.Equal(t, "Hundes", gen.NounForm)
}

func TestDeclineFencedReply(t *testing.T) {
	t.Parallel()

	svc := newTestService(replyWith("```json\n" + tuerReply + "\n```"))

	table, err := svc.Decline(context.Background(), Input{Lemma: "Tür", Gender: domain.GenderFeminine})
	require.NoError(t, err)
	assert.Len(t, table.Cases, 4)
}

func TestDeclineProseWrappedReply(t *testing.T) {
	t.Parallel()

	svc := newTestService(replyWith("Here is the table:\n" + tuerReply + "\nEnjoy!"))

	table, err := svc.Decline(context.Background(), Input{Lemma: "Tür", Gender: domain.GenderFeminine})
	require.NoError(t, err)
	assert.Len(t, table.Cases, 4)
}

func TestDeclineEmptyCases(t *testing.T) {
	t.Parallel()

	svc := newTestService(replyWith(`{"cases":[]}`))

	_, err := svc.Decline(context.Background(), Input{Lemma: "Tür", Gender: domain.GenderFeminine})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestDeclineUnparseableReply(t *testing.T) {
	t.Parallel()

	svc := newTestService(replyWith("I cannot decline that word."))

	_, err := svc.Decline(context.Background(), Input{Lemma: "Tür", Gender: domain.GenderFeminine})
	assert.Error(t, err)
}

func TestDeclineValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockProvider{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			t.Error("model must not be called for invalid input")
			return nil, nil
		},
	})

	_, err := svc.Decline(context.Background(), Input{Lemma: "", Gender: domain.GenderFeminine})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Decline(context.Background(), Input{Lemma: "Tür", Gender: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeclineTransportError(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockProvider{
		CompleteFunc: func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, errors.New("upstream timeout")
		},
	})

	_, err := svc.Decline(context.Background(), Input{Lemma: "Tür", Gender: domain.GenderFeminine})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream timeout")
}
