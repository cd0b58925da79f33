package main

import "github.com/tanema/gween"

// Action is what happens while a tween runs and after it finishes. nexts
// schedule follow-up tweens, so actions chain into sequences.
type Action struct {
	nexts    []func(c *Client)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) *Action {
	a.onFinish = append(a.onFinish, f)
	return a
}

func (a *Action) next(t *gween.Tween, onChange func(float32)) *Action {
	action := &Action{onChange: onChange}
	a.nexts = append(a.nexts,
		func(c *Client) {
			c.Tweens[t] = action
		})
	return action
}

func (c *Client) play(t *gween.Tween, onChange func(float32)) *Action {
	action := &Action{onChange: onChange}
	c.Tweens[t] = action
	return action
}

func (c *Client) updateTweens(dt float32) {
	for t, a := range c.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(c)
			}
			delete(c.Tweens, t)
		}
	}
}
