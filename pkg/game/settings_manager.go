package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// VolumeStep 每次按键调整的音量
const VolumeStep = 0.1

// GameSettings 玩家可调的选项，随最高分一起存在 gdata 中
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 拾取提示音音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // M 键切换
	Fullscreen   bool    `yaml:"fullscreen"`   // F11 切换，下次启动沿用
}

// DefaultSettings 首次启动时的选项：有声音，窗口模式
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
		Fullscreen:   false,
	}
}

// SettingsManager 持有当前选项并负责读写 gdata
// gdata 打开失败时 manager 为 nil，选项只在本次运行中生效
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *GameSettings
}

// 选项记录在 gdata 中的位置：对象 settings，属性 global
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 读取已保存的选项
//
// 参数：
//   - gdataManager: 存储，可为 nil
//
// 返回：
//   - *SettingsManager: 选项管理器，读取失败时使用默认选项
//   - error: 目前总是 nil，读取问题只写日志
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 重新读取选项，没有记录时回到默认值
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 记录里缺的字段保持默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Loaded: volume=%.1f sound=%v fullscreen=%v",
		loaded.SoundVolume, loaded.SoundEnabled, loaded.Fullscreen)
	return nil
}

// Save 写回 gdata；没有存储时直接返回
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 当前选项（指针，调用方只读）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 修改音量，超出 [0, 1] 的值被截断
// 只改内存，持久化需要调用 Save
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 打开或关闭提示音
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 记录是否全屏
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
