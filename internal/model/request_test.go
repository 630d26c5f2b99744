package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	requests []*Request
}

func (q *recordingQueue) Enqueue(r *Request) {
	q.requests = append(q.requests, r)
}

func TestNewRequest_Defaults(t *testing.T) {
	r := NewRequest("saved")

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "saved", r.Message)
	assert.Equal(t, DismissAll, r.Mode)
	assert.Equal(t, StateInfo, r.State)
	assert.Equal(t, LocationBottom, r.Location)
	assert.Equal(t, DirectionVertical, r.PresentingDirection)
	assert.Equal(t, DirectionVertical, r.DismissingDirection)
	assert.Equal(t, AverageLength, r.Duration.Length())
	assert.Nil(t, r.OnDismiss)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestNewRequest_Options(t *testing.T) {
	r := NewRequest("hello",
		WithMode(DismissInteractive),
		WithState(StateError),
		WithLocation(LocationTop),
		WithPresentingDirection(DirectionLeft),
		WithDismissingDirection(DirectionRight),
		WithHost("main"),
	)

	assert.Equal(t, DismissInteractive, r.Mode)
	assert.Equal(t, StateError, r.State)
	assert.Equal(t, LocationTop, r.Location)
	assert.Equal(t, DirectionLeft, r.PresentingDirection)
	assert.Equal(t, DirectionRight, r.DismissingDirection)
	assert.Equal(t, HostID("main"), r.Host)
}

func TestNewRequest_UniqueIDs(t *testing.T) {
	a := NewRequest("a")
	b := NewRequest("b")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRequest_ShowOverridesDurationAndCallback(t *testing.T) {
	q := &recordingQueue{}
	r := NewRequest("copied")

	var got []DismissalReason
	r.Show(q, DurationLong, func(reason DismissalReason) { got = append(got, reason) })

	require.Len(t, q.requests, 1)
	assert.Same(t, r, q.requests[0])
	assert.Equal(t, LongLength, r.Duration.Length())
	require.NotNil(t, r.OnDismiss)

	r.OnDismiss(ReasonAll)
	assert.Equal(t, []DismissalReason{ReasonAll}, got)

	// A second Show replaces both values again.
	r.Show(q, CustomDuration(2*time.Second), nil)
	assert.Equal(t, 2*time.Second, r.Duration.Length())
	assert.Nil(t, r.OnDismiss)
	assert.Len(t, q.requests, 2)
}

func TestRequest_ShowsCancelControl(t *testing.T) {
	tests := []struct {
		name  string
		mode  DismissalMode
		state VisualState
		want  bool
	}{
		{"all mode info", DismissAll, StateInfo, false},
		{"all mode cancel state", DismissAll, StateWithCancelButton, true},
		{"interactive mode info", DismissInteractive, StateInfo, true},
		{"all mode custom", DismissAll, Custom(DefaultStyle("#000000")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRequest("x", WithMode(tt.mode), WithState(tt.state))
			assert.Equal(t, tt.want, r.ShowsCancelControl())
		})
	}
}

func TestRequest_StyleForBuiltinStates(t *testing.T) {
	r := NewRequest("x", WithState(StateWithCancelButton))
	st := r.Style()
	assert.Equal(t, IconClose, st.Icon)
	assert.Equal(t, IconRight, st.IconAlignment)
	assert.Equal(t, DefaultBackground, st.Background)

	r = NewRequest("x", WithState(StateSuccess))
	assert.Equal(t, IconSuccess, r.Style().Icon)
	assert.Equal(t, IconLeft, r.Style().IconAlignment)
}

func TestParseEnums(t *testing.T) {
	mode, err := ParseMode("Interactive")
	require.NoError(t, err)
	assert.Equal(t, DismissInteractive, mode)

	_, err = ParseMode("sometimes")
	assert.Error(t, err)

	loc, err := ParseLocation("top")
	require.NoError(t, err)
	assert.Equal(t, LocationTop, loc)

	_, err = ParseLocation("middle")
	assert.Error(t, err)

	dir, err := ParseDirection("right")
	require.NoError(t, err)
	assert.Equal(t, DirectionRight, dir)

	_, err = ParseDirection("up")
	assert.Error(t, err)

	state, err := ParseState("cancel")
	require.NoError(t, err)
	assert.Equal(t, StateWithCancelButton, state)

	_, err = ParseState("custom")
	assert.Error(t, err)
}

func TestEventAndReasonStrings(t *testing.T) {
	assert.Equal(t, "tap", EventTap.String())
	assert.Equal(t, "swipe-up", EventSwipeUp.String())
	assert.Equal(t, "cancel-button", EventCancelButton.String())
	assert.Equal(t, "timeout", EventTimeout.String())
	assert.Equal(t, "all", ReasonAll.String())
	assert.Equal(t, "interactive", ReasonInteractive.String())
}
