package frames

import (
	"sync/atomic"
	"testing"
)

func TestTask_VisitsEveryIndexOnce(t *testing.T) {
	for _, size := range []int{0, 1, 7, 64, 1000} {
		for _, workers := range []int{-1, 0, 1, 3, 8, 2000} {
			data := make([]int, size)
			for i := range data {
				data[i] = i
			}
			visits := make([]int32, size)

			task(workers, data, func(i int, v int) {
				if i != v {
					t.Errorf("index %d got value %d", i, v)
				}
				atomic.AddInt32(&visits[i], 1)
			})

			for i, n := range visits {
				if n != 1 {
					t.Errorf("size %d workers %d: index %d visited %d times", size, workers, i, n)
				}
			}
		}
	}
}
