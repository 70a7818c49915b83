package router

import (
	"strconv"
	"time"
)

func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

func uint32ToString(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
