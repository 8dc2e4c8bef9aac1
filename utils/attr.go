package utils

import (
	"strings"

	"github.com/zooyer/seatdxf/entities"
)

// GetAttrs 返回 INSERT 的全部属性，标签统一转为大写
func GetAttrs(ins *entities.Insert) map[string]string {
	var attrs = make(map[string]string, len(ins.Attributes))
	for _, a := range ins.Attributes {
		attrs[strings.ToUpper(a.Tag)] = a.Text
	}

	return attrs
}

// GetAttr 按标签取属性值，大小写不敏感
func GetAttr(ins *entities.Insert, key string) string {
	for _, a := range ins.Attributes {
		if strings.EqualFold(a.Tag, key) {
			return a.Text
		}
	}

	return ""
}
