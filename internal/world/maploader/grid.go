package maploader

import "chosenoffset.com/umbra/internal/core/shadows"

// BlocksSight reports whether the cell at (x, y) is a wall. Cells outside the
// grid are open.
func (g *GridData) BlocksSight(x, y int) bool {
	if y < 0 || y >= len(g.Rows) || x < 0 || x >= len(g.Rows[y]) {
		return false
	}
	return g.Rows[y][x] == '#'
}

func (g *GridData) size() (width, height int) {
	if len(g.Rows) == 0 {
		return 0, 0
	}
	return len(g.Rows[0]), len(g.Rows)
}

// Rects covers the grid's sight-blocking cells with as few rectangles as a
// greedy scan finds. Each contiguous region is covered on its own so no
// rectangle bridges two separate walls.
func (g *GridData) Rects() []Rect {
	width, height := g.size()

	var rects []Rect
	for _, region := range g.findContiguousRegions(width, height) {
		for _, b := range coverRegion(region) {
			rects = append(rects, g.toWorld(b))
		}
	}
	return rects
}

// cellBlock is a run of cells [x0, x1) x [y0, y1) in grid coordinates.
type cellBlock struct {
	x0, y0, x1, y1 int
}

// toWorld converts a block to a centered world rectangle. Grid rows run
// downward while world y runs up.
func (g *GridData) toWorld(b cellBlock) Rect {
	cs := g.CellSize
	left := g.OriginX + float64(b.x0)*cs
	right := g.OriginX + float64(b.x1)*cs
	top := g.OriginY - float64(b.y0)*cs
	bottom := g.OriginY - float64(b.y1)*cs
	return Rect{
		X:      (left + right) / 2,
		Y:      (top + bottom) / 2,
		Width:  right - left,
		Height: top - bottom,
	}
}

// findContiguousRegions identifies all connected regions of sight-blocking tiles
func (g *GridData) findContiguousRegions(width, height int) []map[shadows.Coord]bool {
	visited := make(map[shadows.Coord]bool)
	var regions []map[shadows.Coord]bool

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			coord := shadows.Coord{X: x, Y: y}
			if visited[coord] || !g.BlocksSight(x, y) {
				continue
			}
			regions = append(regions, g.floodFill(coord, visited))
		}
	}

	return regions
}

// floodFill performs BFS to find all connected sight-blocking tiles
func (g *GridData) floodFill(start shadows.Coord, visited map[shadows.Coord]bool) map[shadows.Coord]bool {
	region := make(map[shadows.Coord]bool)
	queue := []shadows.Coord{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		region[current] = true

		// 4-connected, no diagonals
		neighbors := []shadows.Coord{
			{X: current.X, Y: current.Y - 1},
			{X: current.X + 1, Y: current.Y},
			{X: current.X, Y: current.Y + 1},
			{X: current.X - 1, Y: current.Y},
		}

		for _, neighbor := range neighbors {
			if visited[neighbor] || !g.BlocksSight(neighbor.X, neighbor.Y) {
				continue
			}
			visited[neighbor] = true
			queue = append(queue, neighbor)
		}
	}

	return region
}

// coverRegion splits a region into blocks. Scanning top-down, left to right,
// each uncovered cell starts a block that grows right as far as the row
// allows and then down while every row below is fully available.
func coverRegion(region map[shadows.Coord]bool) []cellBlock {
	minX, minY, maxX, maxY := bounds(region)
	covered := make(map[shadows.Coord]bool, len(region))
	free := func(x, y int) bool {
		c := shadows.Coord{X: x, Y: y}
		return region[c] && !covered[c]
	}

	var blocks []cellBlock
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !free(x, y) {
				continue
			}

			x1 := x + 1
			for free(x1, y) {
				x1++
			}

			y1 := y + 1
			for rowFree(free, x, x1, y1) {
				y1++
			}

			for cy := y; cy < y1; cy++ {
				for cx := x; cx < x1; cx++ {
					covered[shadows.Coord{X: cx, Y: cy}] = true
				}
			}
			blocks = append(blocks, cellBlock{x0: x, y0: y, x1: x1, y1: y1})
		}
	}
	return blocks
}

func rowFree(free func(x, y int) bool, x0, x1, y int) bool {
	for x := x0; x < x1; x++ {
		if !free(x, y) {
			return false
		}
	}
	return true
}

func bounds(region map[shadows.Coord]bool) (minX, minY, maxX, maxY int) {
	first := true
	for c := range region {
		if first {
			minX, minY, maxX, maxY = c.X, c.Y, c.X, c.Y
			first = false
			continue
		}
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
		maxX = max(maxX, c.X)
		maxY = max(maxY, c.Y)
	}
	return minX, minY, maxX, maxY
}
