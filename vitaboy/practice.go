package vitaboy

import (
	"log"

	"github.com/vitamoo/vitaboy/codec"
	"github.com/vitamoo/vitaboy/math/lin"
)

// Repeat selects how a Practice's normalized elapsed time behaves once it
// reaches the end of its skill's duration.
type Repeat int

const (
	Hold     Repeat = iota // clamp at the end, stop advancing.
	Loop                   // wrap back to the start.
	PingPong               // reverse direction and wrap.
	Fade                   // clamp at the end, same as Hold.
)

// binding pairs a resolved bone index with the motion driving it.
type binding struct {
	motion *codec.MotionDescription
	bone   int
}

// Practice binds a SkillDescription to a Skeleton and advances it in time,
// writing interpolated translations/rotations into the bound bones' local
// transforms each tick. Practices hold a non-owning reference to the
// skeleton and must not outlive it.
type Practice struct {
	skill     *codec.SkillDescription
	skeleton  *Skeleton
	bindings  []binding
	elapsed   float32
	scale     float32
	duration  float32
	repeat    Repeat
	lastTicks int64
	warmedUp  bool
	ready     bool
}

// Bind matches each of skill's motions to a bone in sk by name, dropping
// (and counting, via a diagnostic log) any motion whose bone is absent. A
// bone may be claimed by at most one binding; later motions naming an
// already-claimed bone are dropped as well.
func Bind(skill *codec.SkillDescription, sk *Skeleton) *Practice {
	p := &Practice{
		skill:    skill,
		skeleton: sk,
		scale:    1,
		duration: skill.Duration,
		repeat:   Loop,
		ready:    len(skill.Translations) > 0 || len(skill.Rotations) > 0,
	}
	claimed := make(map[int]bool)
	dropped := 0
	for i := range skill.Motions {
		m := &skill.Motions[i]
		bi, ok := sk.BoneByName(m.BoneName)
		if !ok || claimed[bi] {
			dropped++
			continue
		}
		claimed[bi] = true
		p.bindings = append(p.bindings, binding{motion: m, bone: bi})
	}
	if dropped > 0 {
		log.Printf("vitaboy: skill %q: %d motions dropped (unknown or duplicate bone)", skill.Name, dropped)
	}
	return p
}

// SetRepeat changes the practice's repeat regime.
func (p *Practice) SetRepeat(r Repeat) { p.repeat = r }

// Ready reports whether the bound skill's keyframe buffers are populated.
func (p *Practice) Ready() bool { return p.ready }

// Scale returns the current signed playback rate.
func (p *Practice) Scale() float32 { return p.scale }

// Elapsed returns the current normalized position in [0,1].
func (p *Practice) Elapsed() float32 { return p.elapsed }

// Tick advances the practice to external time ticks (milliseconds,
// monotonically non-decreasing). The first call after Bind only records
// ticks as a baseline and applies no motion. duration == 0 is treated as an
// instantaneous skill: elapsed never advances.
func (p *Practice) Tick(ticks int64) {
	if !p.warmedUp {
		p.warmedUp = true
		p.lastTicks = ticks
		return
	}
	delta := ticks - p.lastTicks
	p.lastTicks = ticks
	if !p.ready || p.duration <= 0 {
		return
	}
	p.elapsed += (float32(delta) / p.duration) * p.scale
	p.applyRepeat()
	p.applyMotions()
}

func (p *Practice) applyRepeat() {
	switch p.repeat {
	case Hold, Fade:
		if p.elapsed > 1 || p.elapsed < 0 {
			p.scale = 0
			p.elapsed = lin.Clamp(p.elapsed, 0, 1)
		}
	case Loop:
		p.elapsed = wrap01(p.elapsed)
	case PingPong:
		if p.elapsed > 1 || p.elapsed < 0 {
			p.scale = -p.scale
		}
		p.elapsed = mirror01(p.elapsed)
	}
}

func wrap01(v float32) float32 {
	v -= lin.Floor32(v)
	if v < 0 {
		v++
	}
	return v
}

// mirror01 folds v into [0, 1] by reflecting at each integer boundary
// (a period-2 triangle wave) rather than truncating with wrap01. PingPong
// needs this: wrapping an overshot elapsed back into [0, 1] snaps the
// played frame to the opposite end of the range every time the animation
// would reverse, instead of continuing smoothly from where it turned.
func mirror01(v float32) float32 {
	const period = 2
	v -= period * lin.Floor32(v/period)
	if v < 0 {
		v += period
	}
	if v > 1 {
		return period - v
	}
	return v
}

func (p *Practice) applyMotions() {
	for _, b := range p.bindings {
		m := b.motion
		if m.Frames == 0 {
			continue
		}
		bone := &p.skeleton.Bones[b.bone]
		frames := float32(m.Frames)
		frameReal := lin.Clamp(frames*p.elapsed, 0, frames-0.001)
		frame := int(lin.Floor32(frameReal))
		tween := frameReal - lin.Floor32(frameReal)

		next := frame + 1
		if next >= m.Frames {
			if p.repeat == Loop {
				next = 0
			} else {
				next = frame
			}
		}

		isRoot := bone.ParentIndex == noParent
		suppressTranslate := isRoot && !p.skill.IsMoving

		if m.HasTranslation && len(p.skill.Translations) > 0 && !suppressTranslate {
			applyTranslation(bone, p.skill.Translations, m.TranslationsOffset, frame, next, tween)
		}
		if m.HasRotation && len(p.skill.Rotations) > 0 {
			applyRotation(bone, p.skill.Rotations, m.RotationsOffset, frame, next, tween)
		}
	}
}

func applyTranslation(bone *Bone, buf []*lin.V3, off, frame, next int, tween float32) {
	a := buf[off+frame]
	if tween <= 0.001 {
		bone.Local.Loc.Set(a)
		return
	}
	bone.Local.Loc.Lerp(a, buf[off+next], tween)
}

func applyRotation(bone *Bone, buf []*lin.Q, off, frame, next int, tween float32) {
	a := buf[off+frame]
	if tween <= 0.001 {
		bone.Local.Rot.Set(a)
		return
	}
	bone.Local.Rot.Slerp(a, buf[off+next], tween)
}
