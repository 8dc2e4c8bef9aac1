package utils

// CombineInserts 合并嵌套块的变换：先做 child 再做 parent
func CombineInserts(parent, child Transform) Transform {
	return Transform{
		X:      parent.applyVector(child.X),
		Y:      parent.applyVector(child.Y),
		Z:      parent.applyVector(child.Z),
		Origin: parent.Apply(child.Origin),
	}
}
