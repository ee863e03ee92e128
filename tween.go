package marionette

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ParamTween animates one parameter from its current value to a target.
// Create one with TweenParam and call Update(dt) every frame before
// EndSetParams.
//
// There is no global animation manager; callers drive Update themselves.
type ParamTween struct {
	tweens [2]*gween.Tween
	puppet *Puppet
	name   string
	Done   bool
}

// TweenParam creates a tween of the named parameter toward to over
// duration seconds using fn.
func TweenParam(p *Puppet, name string, to Vec2, duration float32, fn ease.TweenFunc) (*ParamTween, error) {
	from, ok := p.ParamValue(name)
	if !ok {
		return nil, &UnknownParamError{Name: name}
	}
	t := &ParamTween{puppet: p, name: name}
	t.tweens[0] = gween.New(from[0], to[0], duration, fn)
	t.tweens[1] = gween.New(from[1], to[1], duration, fn)
	return t, nil
}

// Name returns the animated parameter's name.
func (t *ParamTween) Name() string {
	return t.name
}

// Update advances the tween by dt seconds and writes the value to the
// parameter.
func (t *ParamTween) Update(dt float32) {
	if t.Done {
		return
	}
	x, doneX := t.tweens[0].Update(dt)
	y, doneY := t.tweens[1].Update(dt)
	// The name was checked at creation and parameters are never removed.
	_ = t.puppet.SetParam(t.name, Vec2{x, y})
	t.Done = doneX && doneY
}

// Reset rewinds the tween to its start value.
func (t *ParamTween) Reset() {
	for _, tw := range t.tweens {
		tw.Reset()
	}
	t.Done = false
}
