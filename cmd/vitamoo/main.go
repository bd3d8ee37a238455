// Command vitamoo converts and reports on VitaBoy character files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitamoo/vitaboy/codec"
	"github.com/vitamoo/vitaboy/math/lin"
	"github.com/vitamoo/vitaboy/vitaboy"
)

// job describes one file to convert or report on, either supplied on the
// command line or read from a batch manifest.
type job struct {
	Character string `yaml:"character"`
	Mesh      string `yaml:"mesh,omitempty"`
	Report    bool   `yaml:"report,omitempty"`
	GLTF      string `yaml:"gltf,omitempty"`
	Skill     string `yaml:"skill,omitempty"` // skill to pose before export
	Ticks     int64  `yaml:"ticks,omitempty"` // playback position, in ticks
}

// manifest is the optional YAML batch file read by -manifest.
type manifest struct {
	Jobs []job `yaml:"jobs"`
}

func main() {
	manifestPath := flag.String("manifest", "", "YAML batch manifest listing jobs to run")
	character := flag.String("character", "", "character file to convert/report on")
	mesh := flag.String("mesh", "", "mesh file bound to the character, for reports/export")
	report := flag.Bool("report", false, "print a text report instead of converting")
	gltfOut := flag.String("gltf", "", "write a diagnostic glTF snapshot to this path")
	skill := flag.String("skill", "", "pose the exported skeleton using this skill's keyframes")
	ticks := flag.Int64("ticks", 0, "playback position to pose -skill at, in ticks")
	flag.Parse()

	var jobs []job
	if *manifestPath != "" {
		m, err := loadManifest(*manifestPath)
		if err != nil {
			slog.Error("vitamoo: loading manifest", "path", *manifestPath, "err", err)
			os.Exit(1)
		}
		jobs = m.Jobs
	} else if *character != "" {
		jobs = []job{{Character: *character, Mesh: *mesh, Report: *report, GLTF: *gltfOut, Skill: *skill, Ticks: *ticks}}
	} else {
		flag.Usage()
		os.Exit(2)
	}

	for _, j := range jobs {
		if err := runJob(j); err != nil {
			slog.Error("vitamoo: job failed", "character", j.Character, "err", err)
		}
	}
}

func loadManifest(path string) (*manifest, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vitamoo: reading %s: %w", path, err)
	}
	m := &manifest{}
	if err := yaml.Unmarshal(buf, m); err != nil {
		return nil, fmt.Errorf("vitamoo: parsing %s: %w", path, err)
	}
	return m, nil
}

func runJob(j job) error {
	loader := codec.NewLoader()
	defer loader.Dispose()

	cf, err := loader.CharacterFile(j.Character)
	if err != nil {
		return fmt.Errorf("loading %s: %w", j.Character, err)
	}
	if err := codec.Validate(cf); err != nil {
		slog.Warn("vitamoo: validation", "character", j.Character, "err", err)
	}

	var mesh *codec.MeshDescription
	if j.Mesh != "" {
		mesh, err = loader.Mesh(j.Mesh)
		if err != nil {
			return fmt.Errorf("loading %s: %w", j.Mesh, err)
		}
	}

	if j.Report {
		vitaboy.Report(os.Stdout, cf, mesh)
	}

	if j.GLTF != "" {
		if len(cf.Skeletons) == 0 {
			return fmt.Errorf("exporting %s: character file has no skeleton", j.Character)
		}
		sk := vitaboy.BuildSkeleton(&cf.Skeletons[0])

		if j.Skill != "" {
			if err := poseSkill(loader, cf, sk, j.Skill, j.Ticks); err != nil {
				return fmt.Errorf("posing %s: %w", j.Character, err)
			}
		} else {
			sk.Propagate()
		}

		var positions, normals []*lin.V3
		if mesh != nil {
			positions, normals = vitaboy.Deform(mesh, sk)
		}
		doc := vitaboy.ExportGLTF(sk, mesh, positions, normals)
		if err := vitaboy.WriteGLTFFile(doc, j.GLTF); err != nil {
			return fmt.Errorf("writing %s: %w", j.GLTF, err)
		}
	}

	if !j.Report && j.GLTF == "" {
		out := convertedName(j.Character)
		if err := os.WriteFile(out, []byte(codec.EmitCharacterText(cf)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		slog.Info("vitamoo: converted", "in", j.Character, "out", out)
	}
	return nil
}

// poseSkill loads the keyframe stream for the named skill, binds it to
// sk, advances playback to ticks (a warm-up tick plus the requested
// position), and propagates the resulting pose. sk.Propagate is left to
// the caller in the un-posed path; here it runs after the ticks, since
// Practice.Tick only updates bone local transforms.
func poseSkill(loader codec.Loader, cf *codec.CharacterFile, sk *vitaboy.Skeleton, name string, ticks int64) error {
	var skill *codec.SkillDescription
	for i := range cf.Skills {
		if cf.Skills[i].Name == name {
			skill = &cf.Skills[i]
			break
		}
	}
	if skill == nil {
		return fmt.Errorf("no skill named %q", name)
	}
	if skill.AnimationFile != "" {
		translations, rotations, err := loader.Keyframes(skill.AnimationFile, skill.NumTranslations, skill.NumRotations)
		if err != nil {
			return fmt.Errorf("loading keyframes for %q: %w", name, err)
		}
		skill.Translations, skill.Rotations = translations, rotations
	}

	practice := vitaboy.Bind(skill, sk)
	practice.Tick(0)
	practice.Tick(ticks)
	sk.Propagate()
	return nil
}

func convertedName(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + ".converted" + ext
}
