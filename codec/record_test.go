package codec

import (
	"testing"

	"github.com/vitamoo/vitaboy/math/lin"
)

func sampleCharacterFile() *CharacterFile {
	return &CharacterFile{
		Skeletons: []SkeletonDescription{{
			Name: "biped",
			Bones: []BoneDescription{
				{
					Name: "ROOT", ParentName: "",
					Props:    PropertyBag{{Key: "tag", Value: "pelvis"}},
					Position: &lin.V3{X: 0, Y: 0, Z: 0}, Rotation: &lin.Q{W: 1},
					CanTranslate: true, CanRotate: true, CanBlend: false, CanWiggle: false,
					WigglePower: 0,
				},
				{
					Name: "HEAD", ParentName: "ROOT",
					Position: &lin.V3{X: 0, Y: 1.5, Z: 0}, Rotation: &lin.Q{W: 1},
					CanTranslate: false, CanRotate: true, CanBlend: false, CanWiggle: true,
					WigglePower: 0.3,
				},
			},
		}},
		Suits: []SuitDescription{{
			Name: "default", Type: 1,
			Skins: []SkinDescription{{Name: "skin0", BoneName: "HEAD", Flags: 0, MeshName: "head.cfm"}},
		}},
		Skills: []SkillDescription{{
			Name: "wave", AnimationFile: "wave.cfp", Duration: 1000, Distance: 0,
			IsMoving: false, NumTranslations: 0, NumRotations: 2,
			Motions: []MotionDescription{{
				BoneName: "HEAD", Frames: 2, Duration: 1000,
				HasTranslation: false, HasRotation: true,
				TranslationsOffset: 0, RotationsOffset: 0,
				TimeCues: []TimeCue{{Frame: 0, Props: PropertyBag{{Key: "sound", Value: "click"}}}},
			}},
		}},
	}
}

func TestCharacterTextRoundTrip(t *testing.T) {
	cf := sampleCharacterFile()
	text := EmitCharacterText(cf)
	got := ParseCharacterText(text)
	assertCharacterEqual(t, cf, got)

	// A parse/emit/parse cycle must be stable.
	text2 := EmitCharacterText(got)
	got2 := ParseCharacterText(text2)
	assertCharacterEqual(t, got, got2)
}

func TestCharacterBinaryRoundTrip(t *testing.T) {
	cf := sampleCharacterFile()
	buf := EmitCharacterBinary(cf)
	got, err := ParseCharacterBinary(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertCharacterEqual(t, cf, got)
}

func TestCharacterBinaryTruncated(t *testing.T) {
	cf := sampleCharacterFile()
	buf := EmitCharacterBinary(cf)
	_, err := ParseCharacterBinary(buf[:len(buf)-4])
	if err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestEmptyCharacterFile(t *testing.T) {
	cf := &CharacterFile{}
	got := ParseCharacterText(EmitCharacterText(cf))
	if len(got.Skeletons) != 0 || len(got.Suits) != 0 || len(got.Skills) != 0 {
		t.Errorf("expected empty character file, got %+v", got)
	}
}

func TestValidateRejectsUnknownParent(t *testing.T) {
	cf := &CharacterFile{Skeletons: []SkeletonDescription{{
		Name: "bad",
		Bones: []BoneDescription{
			{Name: "A", ParentName: "GHOST", Position: &lin.V3{}, Rotation: &lin.Q{W: 1}},
		},
	}}}
	if err := Validate(cf); err == nil {
		t.Error("expected validation error for unknown parent")
	}
}

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	if err := Validate(sampleCharacterFile()); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func assertCharacterEqual(t *testing.T, want, got *CharacterFile) {
	t.Helper()
	if len(want.Skeletons) != len(got.Skeletons) || len(want.Suits) != len(got.Suits) || len(want.Skills) != len(got.Skills) {
		t.Fatalf("shape mismatch: want %+v got %+v", want, got)
	}
	for si, ws := range want.Skeletons {
		gs := got.Skeletons[si]
		if ws.Name != gs.Name || len(ws.Bones) != len(gs.Bones) {
			t.Fatalf("skeleton mismatch: want %+v got %+v", ws, gs)
		}
		for bi, wb := range ws.Bones {
			gb := gs.Bones[bi]
			if wb.Name != gb.Name || wb.ParentName != gb.ParentName {
				t.Errorf("bone %d mismatch: want %+v got %+v", bi, wb, gb)
			}
			if !wb.Position.Eq(gb.Position) || !wb.Rotation.Eq(gb.Rotation) {
				t.Errorf("bone %d transform mismatch: want %+v got %+v", bi, wb, gb)
			}
			if wb.CanTranslate != gb.CanTranslate || wb.CanRotate != gb.CanRotate ||
				wb.CanBlend != gb.CanBlend || wb.CanWiggle != gb.CanWiggle {
				t.Errorf("bone %d flags mismatch: want %+v got %+v", bi, wb, gb)
			}
			if len(wb.Props) != len(gb.Props) {
				t.Errorf("bone %d props mismatch: want %+v got %+v", bi, wb.Props, gb.Props)
			}
		}
	}
	for ki, wk := range want.Skills {
		gk := got.Skills[ki]
		if wk.Name != gk.Name || wk.AnimationFile != gk.AnimationFile || len(wk.Motions) != len(gk.Motions) {
			t.Errorf("skill mismatch: want %+v got %+v", wk, gk)
		}
	}
}
