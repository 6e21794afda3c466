package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/gamecode-next/internal/constants"
)

// CodeGenerator 兑换码生成器
type CodeGenerator struct {
	now    func() time.Time
	random func(max int) (int, error)
}

// NewCodeGenerator 创建兑换码生成器
func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{now: time.Now, random: cryptoRandomIndex}
}

// WithClock 替换时钟
func (g *CodeGenerator) WithClock(now func() time.Time) *CodeGenerator {
	if now != nil {
		g.now = now
	}
	return g
}

// Generate 生成 <PREFIX>-<YYMMDDHHmm>-XXXX-XXXX-XXXX-XXXX 格式兑换码
func (g *CodeGenerator) Generate(itemType string) (string, error) {
	alphabet := constants.CodeAlphabet
	body := make([]byte, 0, constants.CodeGroupCount*(constants.CodeGroupLength+1))
	for group := 0; group < constants.CodeGroupCount; group++ {
		if group > 0 {
			body = append(body, '-')
		}
		for i := 0; i < constants.CodeGroupLength; i++ {
			idx, err := g.random(len(alphabet))
			if err != nil {
				return "", err
			}
			body = append(body, alphabet[idx])
		}
	}
	stamp := g.now().Format(constants.CodeTimeLayout)
	return codePrefix(itemType) + "-" + stamp + "-" + string(body), nil
}

// codePrefix 取类型前 4 个字符的大写，空类型使用默认前缀
func codePrefix(itemType string) string {
	trimmed := strings.TrimSpace(itemType)
	if trimmed == "" {
		return constants.CodeDefaultPrefix
	}
	upper := []rune(strings.ToUpper(trimmed))
	if len(upper) > constants.CodePrefixLength {
		upper = upper[:constants.CodePrefixLength]
	}
	return string(upper)
}

func cryptoRandomIndex(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
