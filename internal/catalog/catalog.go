// Package catalog 管理关键字提示目录：每个关键字对应一段固定的提示和回答。
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Zacy-Sokach/PromptReplay/internal/replay"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrUnknownKeyword 目录中没有这个关键字
var ErrUnknownKeyword = errors.New("unknown keyword")

// Entry 一个关键字提示
type Entry struct {
	Keyword  string `yaml:"keyword"`
	Prompt   string `yaml:"prompt"`
	Response string `yaml:"response"`
	Topic    string `yaml:"topic,omitempty"`
}

// Request 把条目转换成回放请求，话题为空时使用关键字
func (e Entry) Request(onComplete func()) replay.Request {
	topic := e.Topic
	if topic == "" {
		topic = e.Keyword
	}
	return replay.Request{
		Prompt:     e.Prompt,
		Response:   e.Response,
		Topic:      topic,
		OnComplete: onComplete,
	}
}

// Section 一组关键字
type Section struct {
	Name    string  `yaml:"name"`
	Title   string  `yaml:"title"`
	Entries []Entry `yaml:"entries"`
}

// Catalog 按区域组织的关键字目录
type Catalog struct {
	Sections []Section `yaml:"sections"`
}

// Parse 解析 YAML 目录并校验关键字唯一
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("解析目录失败: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default 返回内置目录
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("内置目录无效: %v", err))
	}
	return c
}

// Load 从文件读取目录，path 为空时返回内置目录
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取目录文件失败: %w", err)
	}
	return Parse(data)
}

func (c *Catalog) validate() error {
	if len(c.Sections) == 0 {
		return errors.New("目录为空")
	}
	seen := make(map[string]string)
	for _, s := range c.Sections {
		if s.Name == "" {
			return errors.New("区域缺少 name")
		}
		for _, e := range s.Entries {
			if strings.TrimSpace(e.Keyword) == "" {
				return fmt.Errorf("区域 %s 中有条目缺少 keyword", s.Name)
			}
			if e.Prompt == "" {
				return fmt.Errorf("关键字 %q 缺少 prompt", e.Keyword)
			}
			key := strings.ToLower(e.Keyword)
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("关键字 %q 重复（区域 %s 和 %s）", e.Keyword, prev, s.Name)
			}
			seen[key] = s.Name
		}
	}
	return nil
}

// Find 按关键字查找条目，不区分大小写
func (c *Catalog) Find(keyword string) (Entry, error) {
	want := strings.ToLower(strings.TrimSpace(keyword))
	for _, s := range c.Sections {
		for _, e := range s.Entries {
			if strings.ToLower(e.Keyword) == want {
				return e, nil
			}
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownKeyword, keyword)
}

// Section 按名称查找区域
func (c *Catalog) Section(name string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Entries 按顺序返回所有条目
func (c *Catalog) Entries() []Entry {
	var all []Entry
	for _, s := range c.Sections {
		all = append(all, s.Entries...)
	}
	return all
}
