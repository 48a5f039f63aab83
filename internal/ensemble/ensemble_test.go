package ensemble

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedDaiam9101/imageable-service/internal/inference"
	"github.com/SyedDaiam9101/imageable-service/internal/vocab"
)

func testTokenizer(t *testing.T) *vocab.Tokenizer {
	t.Helper()
	v, err := vocab.NewVocabulary([]vocab.Entry{
		{Word: "a", ID: 1}, {Word: "man", ID: 2}, {Word: "lays", ID: 3},
		{Word: "on", ID: 4}, {Word: "bench", ID: 5}, {Word: "dog", ID: 6},
	})
	require.NoError(t, err)
	tok, err := vocab.NewTokenizer(v, vocab.DefaultOptions(35))
	require.NoError(t, err)
	return tok
}

func tenMembers() ([]inference.SequenceModel, []*inference.MockSequenceModel) {
	models := make([]inference.SequenceModel, 10)
	mocks := make([]*inference.MockSequenceModel, 10)
	for g := range models {
		mocks[g] = inference.NewMockSequenceModel(float32(g), float32(g)+0.5)
		models[g] = mocks[g]
	}
	return models, mocks
}

// slowModel finishes later the lower its index, so parallel completion order is
// the reverse of member order.
type slowModel struct {
	*inference.MockSequenceModel
	delay time.Duration
}

func (s slowModel) Score(batch [][]int64) ([]float32, error) {
	time.Sleep(s.delay)
	return s.MockSequenceModel.Score(batch)
}

func TestNew_Validation(t *testing.T) {
	tok := testTokenizer(t)

	_, err := New(nil, []inference.SequenceModel{inference.NewMockSequenceModel()})
	require.Error(t, err)

	_, err = New(tok, nil)
	require.Error(t, err)

	_, err = New(tok, []inference.SequenceModel{nil})
	require.Error(t, err)
}

func TestPredict_OneEntryPerMemberInOrder(t *testing.T) {
	models, mocks := tenMembers()
	p, err := New(testTokenizer(t), models)
	require.NoError(t, err)
	require.Equal(t, 10, p.Size())

	res, err := p.Predict(context.Background(), []string{"a man lays on a bench"})
	require.NoError(t, err)
	require.Len(t, res, 10)

	for g, out := range res {
		assert.Equal(t, []float32{float32(g), float32(g) + 0.5}, out, "member %d", g)
		assert.Equal(t, 1, mocks[g].CallCount())
	}
}

func TestPredict_EveryMemberSeesSamePaddedBatch(t *testing.T) {
	models, mocks := tenMembers()
	p, err := New(testTokenizer(t), models)
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), []string{"a man lays on a bench while his"})
	require.NoError(t, err)

	want := make([]int64, 35)
	copy(want, []int64{1, 2, 3, 4, 1, 5})
	for g, m := range mocks {
		batch := m.LastBatch()
		require.Len(t, batch, 1)
		assert.Equal(t, want, batch[0], "member %d", g)
	}
}

func TestBatch_SevenTokensGetTwentyEightTrailingZeros(t *testing.T) {
	v, err := vocab.NewVocabulary([]vocab.Entry{
		{Word: "a", ID: 1}, {Word: "man", ID: 2}, {Word: "lays", ID: 3},
		{Word: "on", ID: 4}, {Word: "bench", ID: 5}, {Word: "while", ID: 6},
	})
	require.NoError(t, err)
	tok, err := vocab.NewTokenizer(v, vocab.DefaultOptions(35))
	require.NoError(t, err)

	p, err := New(tok, []inference.SequenceModel{inference.NewMockSequenceModel()})
	require.NoError(t, err)

	batch, err := p.Batch([]string{"a man lays on a bench while"})
	require.NoError(t, err)
	require.Len(t, batch[0], 35)

	zeros := 0
	for _, id := range batch[0][7:] {
		if id == vocab.PadID {
			zeros++
		}
	}
	assert.Equal(t, 28, zeros)
	assert.NotContains(t, batch[0][:7], vocab.PadID)
}

func TestPredict_ParallelKeepsMemberOrder(t *testing.T) {
	models := make([]inference.SequenceModel, 10)
	for g := range models {
		models[g] = slowModel{
			MockSequenceModel: inference.NewMockSequenceModel(float32(g)),
			delay:             time.Duration(10-g) * time.Millisecond,
		}
	}

	p, err := New(testTokenizer(t), models, WithWorkers(10))
	require.NoError(t, err)

	res, err := p.Predict(context.Background(), []string{"dog", "a man"})
	require.NoError(t, err)
	require.Len(t, res, 10)
	for g, out := range res {
		assert.Equal(t, []float32{float32(g), float32(g)}, out, "member %d", g)
	}
}

func TestPredict_MemberFailureFailsCall(t *testing.T) {
	for _, workers := range []int{1, 4} {
		models, mocks := tenMembers()
		mocks[7].SetError("boom")

		p, err := New(testTokenizer(t), models, WithWorkers(workers))
		require.NoError(t, err)

		res, err := p.Predict(context.Background(), []string{"a dog"})
		require.Error(t, err)
		assert.Nil(t, res, "no partial ensemble results")
		assert.True(t, errors.Is(err, inference.ErrModelInvocation))
		assert.Contains(t, err.Error(), "member 7")
	}
}

func TestPredict_InvalidInput(t *testing.T) {
	models, mocks := tenMembers()
	p, err := New(testTokenizer(t), models)
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), nil)
	assert.ErrorIs(t, err, inference.ErrInvalidInput)

	_, err = p.Predict(context.Background(), []string{"a dog", ""})
	assert.ErrorIs(t, err, inference.ErrInvalidInput)

	assert.Equal(t, 0, mocks[0].CallCount(), "no model runs on invalid input")
}

func TestPredict_Repeatable(t *testing.T) {
	models, _ := tenMembers()
	p, err := New(testTokenizer(t), models, WithWorkers(3))
	require.NoError(t, err)

	texts := []string{"a man lays on a bench", "a dog"}
	first, err := p.Predict(context.Background(), texts)
	require.NoError(t, err)
	second, err := p.Predict(context.Background(), texts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPredict_PrePaddingOption(t *testing.T) {
	mock := inference.NewMockSequenceModel()
	p, err := New(testTokenizer(t), []inference.SequenceModel{mock},
		WithPadding(vocab.PadOptions{Padding: vocab.Pre, Truncating: vocab.Pre}))
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), []string{"dog"})
	require.NoError(t, err)

	batch := mock.LastBatch()
	assert.Equal(t, int64(6), batch[0][34])
	assert.Equal(t, vocab.PadID, batch[0][0])
}

func TestPredict_ObserverSeesEveryMember(t *testing.T) {
	models, _ := tenMembers()

	var mu sync.Mutex
	seen := map[int]bool{}
	p, err := New(testTokenizer(t), models, WithWorkers(5), WithObserver(func(g int, _ time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.NoError(t, err)
		seen[g] = true
	}))
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), []string{"a dog"})
	require.NoError(t, err)
	assert.Len(t, seen, 10)
}

func TestClose(t *testing.T) {
	models, _ := tenMembers()
	p, err := New(testTokenizer(t), models)
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
