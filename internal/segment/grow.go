package segment

// point is a packed worklist entry.
type point struct {
	X, Y int32
}

// GrowRegions expands every active seed through passable pixels.
//
// Seeds are visited by index in list order. Each seed runs an iterative
// 4-connected flood fill whose stack starts with the seed's four orthogonal
// neighbors. For every popped coordinate:
//   - out-of-bounds and barrier pixels are skipped;
//   - a pixel already holding the seed's own color is skipped (color equality
//     is the only revisit guard, so a foreign region that happens to share the
//     exact color is treated as already owned);
//   - a pixel holding any other non-background color is a conflict: the seed
//     originating at that pixel is marked inactive and the pixel is repainted;
//   - otherwise the pixel is painted and its neighbors are pushed.
//
// Seeds are deactivated in place and never removed, so iteration over the
// remaining seeds is unaffected. A seed that is already inactive when its
// turn comes is skipped.
func GrowRegions(mask *Mask, regions *Image, seeds []Seed) {
	w, h := regions.Width, regions.Height

	origins := make(map[int]int, len(seeds))
	for i, s := range seeds {
		origins[s.Y*w+s.X] = i
	}

	stack := make([]point, 0, 64)
	for i := range seeds {
		if !seeds[i].Active {
			continue
		}
		c := seeds[i].Color
		stack = pushNeighbors(stack[:0], int32(seeds[i].X), int32(seeds[i].Y))

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x, y := int(p.X), int(p.Y)
			if x < 0 || x >= w || y < 0 || y >= h {
				continue
			}
			if mask.Blocked(x, y) {
				continue
			}

			cur := regions.RGBAt(x, y)
			if cur == c {
				continue
			}
			if !cur.IsBackground() {
				if j, ok := origins[y*w+x]; ok && j != i {
					seeds[j].Active = false
				}
			}

			regions.SetRGB(x, y, c)
			stack = pushNeighbors(stack, p.X, p.Y)
		}
	}
}

func pushNeighbors(stack []point, x, y int32) []point {
	return append(stack,
		point{X: x - 1, Y: y},
		point{X: x + 1, Y: y},
		point{X: x, Y: y - 1},
		point{X: x, Y: y + 1},
	)
}

// ActiveSeeds returns the number of seeds that survived conflict resolution.
func ActiveSeeds(seeds []Seed) int {
	n := 0
	for _, s := range seeds {
		if s.Active {
			n++
		}
	}
	return n
}
