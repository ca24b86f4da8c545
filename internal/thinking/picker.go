package thinking

import (
	"math/rand/v2"
	"slices"
)

// MaxRetries 抽到重复消息时的最大重抽次数，用尽后接受重复
const MaxRetries = 10

// Pick 从 pool 中均匀抽取一条消息，尽量避开 used 中已有的消息。
// 连续 MaxRetries 次重抽仍重复时直接返回重复的那条。pool 为空时返回空字符串。
func Pick(rng *rand.Rand, pool, used []string) string {
	if len(pool) == 0 {
		return ""
	}

	msg := pool[rng.IntN(len(pool))]
	for attempts := 0; slices.Contains(used, msg) && attempts < MaxRetries; attempts++ {
		msg = pool[rng.IntN(len(pool))]
	}
	return msg
}

// Count 在 [min, max] 中均匀抽取本次要显示的消息条数
func Count(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.IntN(max-min+1)
}
