package metrics

import (
	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Boundedness is the fraction of observed states that are finite and lie
// within radius of the origin.
type Boundedness struct {
	radius     float64
	violations int
	samples    int
}

func NewBoundedness(radius float64) *Boundedness {
	return &Boundedness{radius: radius}
}

func (b *Boundedness) Name() string {
	return "boundedness"
}

func (b *Boundedness) Observe(s dynamo.State) {
	b.samples++
	if !s.IsFinite() || s.Norm() > b.radius {
		b.violations++
	}
}

func (b *Boundedness) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Boundedness) Reset() {
	b.violations = 0
	b.samples = 0
}

// PathLength is the total distance travelled between consecutive states.
type PathLength struct {
	prev   dynamo.State
	seen   bool
	length float64
}

func NewPathLength() *PathLength {
	return &PathLength{}
}

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s dynamo.State) {
	if p.seen {
		p.length += s.Add(p.prev.Scale(-1)).Norm()
	}
	p.prev = s
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.seen = false
	p.length = 0
}
