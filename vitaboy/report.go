package vitaboy

import (
	"fmt"
	"io"

	"github.com/vitamoo/vitaboy/codec"
)

// Report writes a human-readable summary of cf to w: per skeleton, its
// bone count; per suit, its skin count; per skill, its motion count and
// keyframe buffer sizes. If mesh is non-nil its geometry counts are
// appended, mirroring what a converted character actually carries on
// screen.
func Report(w io.Writer, cf *codec.CharacterFile, mesh *codec.MeshDescription) {
	fmt.Fprintf(w, "skeletons: %d\n", len(cf.Skeletons))
	for _, sk := range cf.Skeletons {
		fmt.Fprintf(w, "  %-20s bones=%d\n", sk.Name, len(sk.Bones))
	}

	fmt.Fprintf(w, "suits: %d\n", len(cf.Suits))
	for _, su := range cf.Suits {
		fmt.Fprintf(w, "  %-20s skins=%d\n", su.Name, len(su.Skins))
	}

	fmt.Fprintf(w, "skills: %d\n", len(cf.Skills))
	for _, sk := range cf.Skills {
		fmt.Fprintf(w, "  %-20s motions=%d translations=%d rotations=%d moving=%v\n",
			sk.Name, len(sk.Motions), sk.NumTranslations, sk.NumRotations, sk.IsMoving)
	}

	if mesh == nil {
		return
	}
	fmt.Fprintf(w, "mesh: %s\n", mesh.Name)
	fmt.Fprintf(w, "  texture=%s faces=%d bindings=%d uvs=%d blends=%d vertices=%d\n",
		mesh.TextureName, len(mesh.Faces), len(mesh.Bindings), mesh.NumUVs(), len(mesh.Blends), len(mesh.Positions))
}
