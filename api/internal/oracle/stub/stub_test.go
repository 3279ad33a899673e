package stub

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-analyzer/api/internal/oracle"
)

func TestCompleteIsDeterministic(t *testing.T) {
	req := oracle.Request{Instruction: "x", ImageDataURI: "data:image/png;base64,QUJD"}

	a, err := New().Complete(context.Background(), req)
	require.NoError(t, err)
	b, err := New().Complete(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	lines := strings.Split(strings.TrimSpace(a), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Food Image Name: "))
	assert.True(t, strings.HasPrefix(lines[4], "Fat: "))
}

func TestCompleteRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Complete(ctx, oracle.Request{ImageDataURI: "data:image/png;base64,QUJD"})
	assert.ErrorIs(t, err, context.Canceled)
}
