package outreach

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

type fakeCompleter struct {
	text string
	err  error
	seen string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.seen = prompt
	return f.text, f.err
}

func TestAIDrafterPolish(t *testing.T) {
	fake := &fakeCompleter{text: "Hi Dana, rewritten draft.\n"}
	d := NewAIDrafter(fake)

	draft := EmailDraft{ID: "professional", Name: "Professional", Content: "original body"}
	polished := d.Polish(context.Background(), draft, testMatch(), testInfo())

	assert.Equal(t, "professional-ai", polished.ID)
	assert.Equal(t, "Professional (AI)", polished.Name)
	assert.Equal(t, "Hi Dana, rewritten draft.", polished.Content)

	// The prompt grounds the rewrite in the match facts and the draft body.
	assert.Contains(t, fake.seen, "Dana Reyes")
	assert.Contains(t, fake.seen, "Handles sponsorship partnerships")
	assert.Contains(t, fake.seen, "original body")
}

func TestAIDrafterFallsBackOnError(t *testing.T) {
	d := NewAIDrafter(&fakeCompleter{err: eris.New("api down")})

	draft := EmailDraft{ID: "casual", Name: "Casual", Content: "original body"}
	polished := d.Polish(context.Background(), draft, testMatch(), testInfo())

	assert.Equal(t, draft, polished)
}

func TestAIDrafterFallsBackOnEmptyCompletion(t *testing.T) {
	d := NewAIDrafter(&fakeCompleter{text: "   \n"})

	draft := EmailDraft{ID: "casual", Name: "Casual", Content: "original body"}
	polished := d.Polish(context.Background(), draft, testMatch(), testInfo())

	assert.Equal(t, draft, polished)
}
