package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ScoreStore 持久化整数存储
// 游戏只用它保存最高分；读取失败视为 0，写入失败只记录日志
type ScoreStore interface {
	Get(key string) int
	Set(key string, value int)
}

// MemoryScoreStore 内存实现，用于测试和无法持久化的平台
type MemoryScoreStore struct {
	values map[string]int
	writes int
}

// NewMemoryScoreStore 创建内存存储
func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{values: make(map[string]int)}
}

// Get 读取键值，不存在时返回 0
func (s *MemoryScoreStore) Get(key string) int {
	return s.values[key]
}

// Set 写入键值
func (s *MemoryScoreStore) Set(key string, value int) {
	s.values[key] = value
	s.writes++
}

// Writes 返回累计写入次数
func (s *MemoryScoreStore) Writes() int {
	return s.writes
}

// 存储路径常量
const scoresObject = "scores"

// scoreRecord 单个分数在磁盘上的格式
type scoreRecord struct {
	Value int `yaml:"value"`
}

// GdataScoreStore 基于 gdata 的跨平台持久化存储
// 每个键存为 scores 对象下的一个属性，内容为 YAML
type GdataScoreStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	cache        map[string]int
}

// NewGdataScoreStore 创建分数存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//
// 返回：
//   - *GdataScoreStore: 分数存储实例
func NewGdataScoreStore(gdataManager *gdata.Manager) *GdataScoreStore {
	if gdataManager == nil {
		log.Printf("[ScoreStore] Warning: gdata unavailable, scores will not persist")
	}
	return &GdataScoreStore{
		gdataManager: gdataManager,
		cache:        make(map[string]int),
	}
}

// Get 读取分数
// 首次读取后缓存在内存中；文件不存在或损坏时返回 0
func (s *GdataScoreStore) Get(key string) int {
	if v, ok := s.cache[key]; ok {
		return v
	}

	v, err := s.load(key)
	if err != nil {
		log.Printf("[ScoreStore] Warning: %v (using 0)", err)
	}
	s.cache[key] = v
	return v
}

func (s *GdataScoreStore) load(key string) (int, error) {
	if s.gdataManager == nil {
		return 0, nil
	}
	if !s.gdataManager.ObjectPropExists(scoresObject, key) {
		return 0, nil
	}

	data, err := s.gdataManager.LoadObjectProp(scoresObject, key)
	if err != nil {
		return 0, fmt.Errorf("failed to load score %q: %w", key, err)
	}

	var record scoreRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return 0, fmt.Errorf("failed to unmarshal score %q: %w", key, err)
	}
	return record.Value, nil
}

// Set 写入分数
// 内存值立即更新；持久化失败只记录警告，不影响游戏
func (s *GdataScoreStore) Set(key string, value int) {
	s.cache[key] = value
	if s.gdataManager == nil {
		return
	}

	data, err := yaml.Marshal(scoreRecord{Value: value})
	if err != nil {
		log.Printf("[ScoreStore] Warning: failed to marshal score %q: %v", key, err)
		return
	}
	if err := s.gdataManager.SaveObjectProp(scoresObject, key, data); err != nil {
		log.Printf("[ScoreStore] Warning: failed to save score %q: %v", key, err)
		return
	}
	log.Printf("[ScoreStore] Saved %s=%d", key, value)
}
