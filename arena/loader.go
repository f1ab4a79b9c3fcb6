package arena

import (
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lafriks/go-tiled"
)

// TMX layout conventions: the "Obstacles" object group holds solid
// blocks with a float "height" property (meters); the "Spawns" object
// group holds spawn points with an optional float "yaw" property. The
// map's pixel size times metersPerPixel gives the arena extents.
const (
	obstacleGroup  = "Obstacles"
	spawnGroup     = "Spawns"
	metersPerPixel = 0.25

	defaultObstacleHeight = 2.0
	defaultSpawnHeight    = 2.0
)

// Load parses a TMX file into an Arena. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Arena, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	width := float64(m.Width*m.TileWidth) * metersPerPixel
	depth := float64(m.Height*m.TileHeight) * metersPerPixel
	a := New(width, depth)

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case obstacleGroup:
			for _, o := range og.Objects {
				h := o.Properties.GetFloat("height")
				if h <= 0 {
					h = defaultObstacleHeight
				}
				a.AddObstacle(
					o.X*metersPerPixel-width/2,
					o.Y*metersPerPixel-depth/2,
					o.Width*metersPerPixel,
					o.Height*metersPerPixel,
					h,
				)
			}
		case spawnGroup:
			for _, o := range og.Objects {
				yaw := o.Properties.GetFloat("yaw")
				pos := mgl64.Vec3{
					o.X*metersPerPixel - width/2,
					defaultSpawnHeight,
					o.Y*metersPerPixel - depth/2,
				}
				a.AddSpawn(pos, yaw)
			}
		}
	}

	if len(a.spawns) == 0 {
		a.AddSpawn(mgl64.Vec3{0, defaultSpawnHeight, 0}, 0)
	}
	return a, nil
}
