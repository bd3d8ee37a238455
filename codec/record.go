package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vitamoo/vitaboy/math/lin"
)

// Property is one (key, value) pair in a property bag. Keys are not
// required to be unique; PropertyBag is an ordered multiset, not a map.
type Property struct {
	Key, Value string
}

// PropertyBag is an ordered sequence of Properties, preserved on
// round-trip.
type PropertyBag []Property

// TimeCue is a per-frame property bag attached to a Motion, used for
// timed animation events (footstep sounds, effect triggers, and the
// like).
type TimeCue struct {
	Frame int
	Props PropertyBag
}

// BoneDescription is the on-disk form of a skeleton bone: rest pose,
// capability flags, and an attached property bag.
type BoneDescription struct {
	Name         string
	ParentName   string
	Props        PropertyBag
	Position     *lin.V3
	Rotation     *lin.Q
	CanTranslate bool
	CanRotate    bool
	CanBlend     bool
	CanWiggle    bool
	WigglePower  float32
}

// SkeletonDescription is a named, ordered sequence of bones.
type SkeletonDescription struct {
	Name  string
	Bones []BoneDescription
}

// SkinDescription attaches a mesh to a bone.
type SkinDescription struct {
	Name     string
	BoneName string
	Flags    int
	MeshName string
	Props    PropertyBag
}

// SuitDescription is a named outfit: an ordered collection of skins.
type SuitDescription struct {
	Name  string
	Type  int
	Props PropertyBag
	Skins []SkinDescription
}

// MotionDescription is a per-bone keyframe stream, indexing into the
// owning Skill's shared translation/rotation buffers.
type MotionDescription struct {
	BoneName           string
	Frames             int
	Duration           float32
	HasTranslation     bool
	HasRotation        bool
	TranslationsOffset int
	RotationsOffset    int
	Props              PropertyBag
	TimeCues           []TimeCue
}

// SkillDescription is a named animation: a set of Motions plus the flat
// keyframe buffers they index into. Translations and Rotations are
// populated from the referenced CFP file (see cfp.go), not from the
// character record itself; a freshly parsed SkillDescription carries only
// the counts until its keyframes are loaded.
type SkillDescription struct {
	Name            string
	AnimationFile   string
	Duration        float32
	Distance        float32
	IsMoving        bool
	NumTranslations int
	NumRotations    int
	Motions         []MotionDescription
	Translations    []*lin.V3
	Rotations       []*lin.Q
}

// CharacterFile is a container of zero or more skeletons, suits, and
// skills; a single file may carry any combination.
type CharacterFile struct {
	Skeletons []SkeletonDescription
	Suits     []SuitDescription
	Skills    []SkillDescription
}

// ParseCharacterText parses the text form of a character file: a one-line
// header, a version marker line ("300" or "version 300", ignored beyond
// being consumed), then the shared record body.
func ParseCharacterText(content string) *CharacterFile {
	r := newTextReader(content)
	// The reader skips "//" comment lines, so when the header is a comment
	// the first line read is already the version marker.
	first := r.readString()
	if len(first) >= 8 && strings.EqualFold(first[:8], "version ") {
		first = strings.TrimSpace(first[8:])
	}
	if _, err := strconv.Atoi(first); err != nil {
		r.readString() // version marker, ignored: format is stable at 300.
	}
	return readCharacterRecord(r)
}

// ParseCharacterBinary parses the binary form of a character file, which
// has no leading header or version field. It returns ErrTruncated if the
// buffer runs out before the record is complete.
func ParseCharacterBinary(buf []byte) (cf *CharacterFile, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = e
				return
			}
			panic(rec)
		}
	}()
	cf = readCharacterRecord(newBinaryReader(buf))
	return cf, nil
}

// EmitCharacterText writes the text form of cf, including the header and
// literal `version 300` line.
func EmitCharacterText(cf *CharacterFile) string {
	w := newTextWriter()
	w.writeString("// VitaBoy character file")
	w.writeString("version 300")
	writeCharacterRecord(w, cf)
	return w.String()
}

// EmitCharacterBinary writes the binary form of cf: the shared record with
// no leading version field.
func EmitCharacterBinary(cf *CharacterFile) []byte {
	w := newBinaryWriter()
	writeCharacterRecord(w, cf)
	return w.Bytes()
}

func readCharacterRecord(r Reader) *CharacterFile {
	cf := &CharacterFile{}
	for n := r.readInt(); n > 0; n-- {
		cf.Skeletons = append(cf.Skeletons, readSkeleton(r))
	}
	for n := r.readInt(); n > 0; n-- {
		cf.Suits = append(cf.Suits, readSuit(r))
	}
	for n := r.readInt(); n > 0; n-- {
		cf.Skills = append(cf.Skills, readSkill(r))
	}
	return cf
}

func writeCharacterRecord(w Writer, cf *CharacterFile) {
	w.writeInt(len(cf.Skeletons))
	for i := range cf.Skeletons {
		writeSkeleton(w, &cf.Skeletons[i])
	}
	w.writeInt(len(cf.Suits))
	for i := range cf.Suits {
		writeSuit(w, &cf.Suits[i])
	}
	w.writeInt(len(cf.Skills))
	for i := range cf.Skills {
		writeSkill(w, &cf.Skills[i])
	}
}

func readProps(r Reader) PropertyBag {
	if !r.readBool() {
		return nil
	}
	n := r.readInt()
	bag := make(PropertyBag, n)
	for i := range bag {
		bag[i] = Property{Key: r.readString(), Value: r.readString()}
	}
	return bag
}

func writeProps(w Writer, bag PropertyBag) {
	w.writeBool(len(bag) > 0)
	if len(bag) == 0 {
		return
	}
	w.writeInt(len(bag))
	for _, p := range bag {
		w.writeString(p.Key)
		w.writeString(p.Value)
	}
}

func readSkeleton(r Reader) SkeletonDescription {
	s := SkeletonDescription{Name: r.readString()}
	n := r.readInt()
	s.Bones = make([]BoneDescription, n)
	for i := range s.Bones {
		s.Bones[i] = readBone(r)
	}
	return s
}

func writeSkeleton(w Writer, s *SkeletonDescription) {
	w.writeString(s.Name)
	w.writeInt(len(s.Bones))
	for i := range s.Bones {
		writeBone(w, &s.Bones[i])
	}
}

func readBone(r Reader) BoneDescription {
	b := BoneDescription{}
	b.Name = r.readString()
	b.ParentName = r.readString()
	b.Props = readProps(r)
	b.Position = r.readVec3()
	b.Rotation = r.readQuat()
	b.CanTranslate = r.readBool()
	b.CanRotate = r.readBool()
	b.CanBlend = r.readBool()
	b.CanWiggle = r.readBool()
	b.WigglePower = r.readFloat()
	return b
}

func writeBone(w Writer, b *BoneDescription) {
	w.writeString(b.Name)
	w.writeString(b.ParentName)
	writeProps(w, b.Props)
	w.writeVec3(b.Position)
	w.writeQuat(b.Rotation)
	w.writeBool(b.CanTranslate)
	w.writeBool(b.CanRotate)
	w.writeBool(b.CanBlend)
	w.writeBool(b.CanWiggle)
	w.writeFloat(b.WigglePower)
}

func readSkin(r Reader) SkinDescription {
	s := SkinDescription{}
	s.Name = r.readString()
	s.BoneName = r.readString()
	s.Flags = r.readInt()
	s.MeshName = r.readString()
	s.Props = readProps(r)
	return s
}

func writeSkin(w Writer, s *SkinDescription) {
	w.writeString(s.Name)
	w.writeString(s.BoneName)
	w.writeInt(s.Flags)
	w.writeString(s.MeshName)
	writeProps(w, s.Props)
}

func readSuit(r Reader) SuitDescription {
	s := SuitDescription{}
	s.Name = r.readString()
	s.Type = r.readInt()
	s.Props = readProps(r)
	n := r.readInt()
	s.Skins = make([]SkinDescription, n)
	for i := range s.Skins {
		s.Skins[i] = readSkin(r)
	}
	return s
}

func writeSuit(w Writer, s *SuitDescription) {
	w.writeString(s.Name)
	w.writeInt(s.Type)
	writeProps(w, s.Props)
	w.writeInt(len(s.Skins))
	for i := range s.Skins {
		writeSkin(w, &s.Skins[i])
	}
}

func readMotion(r Reader) MotionDescription {
	m := MotionDescription{}
	m.BoneName = r.readString()
	m.Frames = r.readInt()
	m.Duration = r.readFloat()
	m.HasTranslation = r.readBool()
	m.HasRotation = r.readBool()
	m.TranslationsOffset = r.readInt()
	m.RotationsOffset = r.readInt()
	m.Props = readProps(r)
	if r.readBool() {
		n := r.readInt()
		m.TimeCues = make([]TimeCue, n)
		for i := range m.TimeCues {
			m.TimeCues[i] = TimeCue{Frame: r.readInt(), Props: readProps(r)}
		}
	}
	return m
}

func writeMotion(w Writer, m *MotionDescription) {
	w.writeString(m.BoneName)
	w.writeInt(m.Frames)
	w.writeFloat(m.Duration)
	w.writeBool(m.HasTranslation)
	w.writeBool(m.HasRotation)
	w.writeInt(m.TranslationsOffset)
	w.writeInt(m.RotationsOffset)
	writeProps(w, m.Props)
	w.writeBool(len(m.TimeCues) > 0)
	if len(m.TimeCues) == 0 {
		return
	}
	w.writeInt(len(m.TimeCues))
	for _, c := range m.TimeCues {
		w.writeInt(c.Frame)
		writeProps(w, c.Props)
	}
}

func readSkill(r Reader) SkillDescription {
	s := SkillDescription{}
	s.Name = r.readString()
	s.AnimationFile = r.readString()
	s.Duration = r.readFloat()
	s.Distance = r.readFloat()
	s.IsMoving = r.readBool()
	s.NumTranslations = r.readInt()
	s.NumRotations = r.readInt()
	n := r.readInt()
	s.Motions = make([]MotionDescription, n)
	for i := range s.Motions {
		s.Motions[i] = readMotion(r)
	}
	return s
}

func writeSkill(w Writer, s *SkillDescription) {
	w.writeString(s.Name)
	w.writeString(s.AnimationFile)
	w.writeFloat(s.Duration)
	w.writeFloat(s.Distance)
	w.writeBool(s.IsMoving)
	w.writeInt(s.NumTranslations)
	w.writeInt(s.NumRotations)
	w.writeInt(len(s.Motions))
	for i := range s.Motions {
		writeMotion(w, &s.Motions[i])
	}
}

// Validate checks that every skeleton in cf has at most one root bone and
// that every non-empty parent name resolves to another bone in the same
// skeleton. It does not mutate cf; callers that only need parse-don't-fail
// behavior can ignore the error, since the runtime skeleton builder
// tolerates unresolved parents on its own.
func Validate(cf *CharacterFile) error {
	for _, sk := range cf.Skeletons {
		names := make(map[string]bool, len(sk.Bones))
		for _, b := range sk.Bones {
			names[b.Name] = true
		}
		roots := 0
		for _, b := range sk.Bones {
			if b.ParentName == "" {
				roots++
			} else if !names[b.ParentName] {
				return fmt.Errorf("codec: skeleton %q: bone %q has unknown parent %q", sk.Name, b.Name, b.ParentName)
			}
		}
		if roots > 1 {
			return fmt.Errorf("codec: skeleton %q has %d root bones, want at most 1", sk.Name, roots)
		}
	}
	return nil
}
