package sprout

// nodeIDCounter is a plain counter; nodes live on the game goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a retained visual layer: the overlay, its title, the progress ring,
// a section panel. Draw code reads its fields; tweens write them.
type Node struct {
	ID   uint32
	Name string

	Parent   *Node
	children []*Node

	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Alpha    float64
	// Visible hides the node and its descendants from draw code.
	Visible bool

	disposed bool
}

// NewNode creates a visible node at the origin with unit scale and alpha.
func NewNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
	}
}

// AddChild appends child, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n || child.disposed {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child if it is a direct child of n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldPosition returns the node's position with every ancestor's offset
// applied.
func (n *Node) WorldPosition() (float64, float64) {
	x, y := n.X, n.Y
	for p := n.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// WorldAlpha returns the product of the node's alpha and its ancestors'.
func (n *Node) WorldAlpha() float64 {
	a := n.Alpha
	for p := n.Parent; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// WorldVisible reports whether the node and every ancestor are visible.
func (n *Node) WorldVisible() bool {
	for c := n; c != nil; c = c.Parent {
		if !c.Visible {
			return false
		}
	}
	return true
}

// Dispose detaches the node and all descendants and marks them disposed.
// Tweens targeting a disposed node stop on their next update.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
}

// IsDisposed reports whether Dispose has been called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}
