package domain

// Handle references an ellipse on a drawing surface. It is only used to issue
// draw commands; the shape registry stays the owner of shape state.
type Handle uint64

// Surface is the drawing collaborator the editor drives. Any error it returns
// means the surface can no longer mirror the model.
type Surface interface {
	CreateEllipse(box Box, style Style) (Handle, error)
	SetEllipseGeometry(h Handle, box Box) error
	SetEllipseStyle(h Handle, style Style) error
	Width() float64
	Height() float64
}
