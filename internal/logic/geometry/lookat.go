package geometry

import "github.com/go-gl/mathgl/mgl64"

// LookAt returns the rotation that turns an object at from so that its
// local +z axis points at target, with its local +y kept as close to up as
// possible. The unit facing vector is returned as well.
// If from and target coincide the object keeps the identity rotation.
func LookAt(from, target, up mgl64.Vec3) (mgl64.Vec3, mgl64.Quat) {
	z := target.Sub(from)
	if z.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}, mgl64.QuatIdent()
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() < 1e-9 {
		// looking straight along up; any horizontal x will do
		x = mgl64.Vec3{1, 0, 0}
	}
	x = x.Normalize()
	y := z.Cross(x)

	q := mgl64.Mat4ToQuat(mgl64.Mat3FromCols(x, y, z).Mat4())
	return z, q.Normalize()
}
