package glm

type Vec2f = Vec2[float32]
type Vec3f = Vec3[float32]

type Vec2u = Vec2[uint32]

type Rectf = Rectangle2[float32]
type Rectu = Rectangle2[uint32]
