package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// ==================== 工号与登录码 ====================

// LoginCodePattern 登录码格式：8位大写字母或数字
var LoginCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// MobilePattern 大陆手机号格式
var MobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

const loginCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const loginCodeLength = 8

// RandomLoginCode 生成一个随机登录码
// 登录码是凭证，必须走平台 CSPRNG
func RandomLoginCode() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(loginCodeCharset)))
	for i := 0; i < loginCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(loginCodeCharset[n.Int64()])
	}
	return sb.String(), nil
}

// NameInitials 取姓名的拼音首字母，大写
// 汉字取拼音首字母，字母数字原样保留，其他字符忽略
func NameInitials(name string) string {
	args := pinyin.NewArgs()
	args.Style = pinyin.FirstLetter
	args.Fallback = func(r rune, a pinyin.Args) []string {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return []string{string(r)}
		}
		return nil
	}

	var sb strings.Builder
	for _, parts := range pinyin.Pinyin(name, args) {
		if len(parts) == 0 || parts[0] == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(parts[0][:1]))
	}
	return sb.String()
}
