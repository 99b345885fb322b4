package testutils

import "os"

// SavedEnv 记录环境变量被覆盖前的状态
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

// SetEnv 设置环境变量并返回原状态，供 TestMain 这类无法使用 t.Setenv 的场景恢复
func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

// RestoreEnv 按逆序恢复，同一变量被多次覆盖时回到最初的值
func RestoreEnv(envs []SavedEnv) {
	for i := len(envs) - 1; i >= 0; i-- {
		env := envs[i]
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
			continue
		}
		_ = os.Unsetenv(env.Key)
	}
}
