package marionette

import "math"

// rigidPendulumDeriv returns the derivative of (angle, angular velocity)
// for a pendulum of fixed length with critically scaled angular damping.
// Damping is scaled by the gravity-driven natural frequency, or by the
// driver's Frequency when there is no gravity to swing against, so a
// damped pendulum always comes to rest.
func rigidPendulumDeriv(props PhysicsProps, g float32) derivFunc {
	lengthRatio := g / props.Length
	critDamp := 2 * sqrt32(lengthRatio)
	if !(lengthRatio > 0) {
		critDamp = 2 * 2 * math.Pi * props.Frequency
	}
	return func(v physicsVars) physicsVars {
		angle, dangle := v[0], v[1]
		dd := -lengthRatio*sin32(angle) - dangle*props.AngleDamping*critDamp
		return physicsVars{dangle, dd}
	}
}

// springPendulumDeriv returns the derivative of (bob position, bob
// velocity) for a bob hanging from anchor on a damped spring. Damping is
// split into a tangential and a radial part measured in a frame aligned
// with the anchor-to-bob direction.
func springPendulumDeriv(props PhysicsProps, g float32, anchor Vec2) derivFunc {
	kSqrt := props.Frequency * 2 * math.Pi
	k := kSqrt * kSqrt
	restLength := props.Length - g/k

	critDampAngle := 2 * sqrt32(g/props.Length)
	critDampLength := 2 * kSqrt

	return func(v physicsVars) physicsVars {
		bob := Vec2{v[0], v[1]}
		vel := Vec2{v[2], v[3]}

		off := bob.Sub(anchor)
		dist := off.Len()
		dir := Vec2{0, 1}
		if dist > 0 {
			dir = off.Mul(1 / dist)
		}

		force := Vec2{0, g}.Sub(dir.Mul((dist - restLength) * k))

		tangential := vel[0]*dir[1] - vel[1]*dir[0]
		radial := vel[0]*dir[0] + vel[1]*dir[1]
		tangential *= -props.AngleDamping * critDampAngle
		radial *= -props.LengthDamping * critDampLength
		damping := Vec2{
			tangential*dir[1] + radial*dir[0],
			-tangential*dir[0] + radial*dir[1],
		}

		acc := force.Add(damping)
		return physicsVars{vel[0], vel[1], acc[0], acc[1]}
	}
}

func sin32(x float32) float32  { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32  { return float32(math.Cos(float64(x))) }
func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func atan232(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}
