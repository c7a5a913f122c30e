package overlay

// Placement is how an artifact is put into the destination directory.
type Placement string

const (
	// PlaceCopy copies a file, possibly under a new name.
	PlaceCopy Placement = "copy"
	// PlaceSymlinkFile links a single file.
	PlaceSymlinkFile Placement = "symlink-file"
	// PlaceSymlinkDir links a whole folder so edits made by the game land in the source.
	PlaceSymlinkDir Placement = "symlink-dir"
)

// ModsDest is the destination slot that always links to the mods root.
const ModsDest = "Mods"

// Entry is one overlay placement. In Layout, Source is the artifact name
// searched for under the source root; entries returned by Plan carry the
// resolved source path instead.
type Entry struct {
	Source   string    `json:"source"`
	Dest     string    `json:"dest"`
	Kind     Placement `json:"kind"`
	Required bool      `json:"required"`
}

// IsDir reports whether the entry occupies a folder slot.
func (e Entry) IsDir() bool {
	return e.Kind == PlaceSymlinkDir
}

// Layout is the fixed set of artifacts placed into the game directory.
// d3d11.dll is renamed to dxgi.dll so it loads next to a DXVK d3d11.dll.
var Layout = []Entry{
	{Source: "d3d11.dll", Dest: "dxgi.dll", Kind: PlaceCopy, Required: true},
	{Source: "d3dcompiler_47.dll", Dest: "d3dcompiler_47.dll", Kind: PlaceCopy},
	{Source: "d3dx.ini", Dest: "d3dx.ini", Kind: PlaceCopy},
	{Source: "Core", Dest: "Core", Kind: PlaceSymlinkDir},
	{Source: "ShaderFixes", Dest: "ShaderFixes", Kind: PlaceSymlinkDir},
}

// Footprint lists every destination slot the layout can occupy, Mods included.
func Footprint(layout []Entry) []Entry {
	slots := make([]Entry, 0, len(layout)+1)
	slots = append(slots, layout...)
	return append(slots, Entry{Dest: ModsDest, Kind: PlaceSymlinkDir, Required: true})
}
