// Package thinking 管理思考阶段显示的状态消息池，并从中随机抽取不重复的消息。
package thinking

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed pools.yaml
var defaultPools []byte

// Rule 一组话题关键字及其专属消息
type Rule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Messages []string `yaml:"messages"`
}

// Matches 话题（不区分大小写）包含任一关键字即命中
func (r Rule) Matches(topic string) bool {
	lower := strings.ToLower(topic)
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Catalog 按顺序求值的规则列表，外加默认池和通用池
type Catalog struct {
	General []string `yaml:"general"`
	Default []string `yaml:"default"`
	Rules   []Rule   `yaml:"rules"`
}

// PoolFor 返回话题对应的消息池：第一个命中规则的消息加通用池，
// 没有命中时为默认池加通用池。返回的切片是新分配的。
func (c *Catalog) PoolFor(topic string) []string {
	base := c.Default
	if topic != "" {
		for _, rule := range c.Rules {
			if rule.Matches(topic) {
				base = rule.Messages
				break
			}
		}
	}

	pool := make([]string, 0, len(base)+len(c.General))
	pool = append(pool, base...)
	pool = append(pool, c.General...)
	return pool
}

// RuleFor 返回话题命中的规则名，没有命中时返回空字符串
func (c *Catalog) RuleFor(topic string) string {
	if topic == "" {
		return ""
	}
	for _, rule := range c.Rules {
		if rule.Matches(topic) {
			return rule.Name
		}
	}
	return ""
}

// ParseCatalog 解析 YAML 格式的消息池
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("解析消息池失败: %w", err)
	}
	if len(c.General) > 0 {
		return &c, nil
	}
	// 没有通用池时，每个可能选中的池都必须自带消息
	if len(c.Default) == 0 {
		return nil, fmt.Errorf("消息池缺少 default 或 general 消息")
	}
	for i, rule := range c.Rules {
		if len(rule.Messages) == 0 {
			return nil, fmt.Errorf("规则 %d (%s) 没有消息且未配置 general", i, rule.Name)
		}
	}
	return &c, nil
}

// DefaultCatalog 返回内置消息池
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultPools)
	if err != nil {
		panic(fmt.Sprintf("内置消息池无效: %v", err))
	}
	return c
}

// LoadCatalog 从文件读取消息池
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取消息池文件失败: %w", err)
	}
	return ParseCatalog(data)
}
