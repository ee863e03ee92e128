package marionette

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	t.Cleanup(func() { SetLogger(nil) })

	r := newRig()
	r.node(0, 1, "Loose")
	DrawableComponent.Add(r.world, 1, NewDrawable())
	r.puppet().Prepare()

	assert.Contains(t, buf.String(), "neither TexturedMesh nor Composite")
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	custom := log.New(&bytes.Buffer{})
	SetLogger(custom)
	SetLogger(nil)
	assert.NotSame(t, custom, Logger())
	assert.Equal(t, log.WarnLevel, Logger().GetLevel())
}
