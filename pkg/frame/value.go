package frame

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// KeyOf returns a canonical string for the values of columns in row. Rows with
// equal keys are considered the same combination by DropDuplicates and Join.
//
// Each value is written as <len>:<token> so no value can spill into its
// neighbour. Numbers compare by value across kinds, so int32(7) and 7.0 share
// a key while distinct int64 values beyond 2^53 do not.
func KeyOf(row Row, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		tok := keyToken(row[c])
		b.WriteString(strconv.Itoa(len(tok)))
		b.WriteByte(':')
		b.WriteString(tok)
	}
	return b.String()
}

const nilToken = "\x00nil"

func keyToken(v any) string {
	switch x := v.(type) {
	case nil:
		return nilToken
	case int:
		return "n:" + strconv.FormatInt(int64(x), 10)
	case int8:
		return "n:" + strconv.FormatInt(int64(x), 10)
	case int16:
		return "n:" + strconv.FormatInt(int64(x), 10)
	case int32:
		return "n:" + strconv.FormatInt(int64(x), 10)
	case int64:
		return "n:" + strconv.FormatInt(x, 10)
	case uint:
		return "n:" + strconv.FormatUint(uint64(x), 10)
	case uint8:
		return "n:" + strconv.FormatUint(uint64(x), 10)
	case uint16:
		return "n:" + strconv.FormatUint(uint64(x), 10)
	case uint32:
		return "n:" + strconv.FormatUint(uint64(x), 10)
	case uint64:
		return "n:" + strconv.FormatUint(x, 10)
	case *big.Int:
		if x == nil {
			return nilToken
		}
		return "n:" + x.String()
	case string:
		return "s:" + x
	case []byte:
		return "s:" + string(x)
	case time.Time:
		return "t:" + x.UTC().Format(time.RFC3339Nano)
	}
	if f, ok := ToFloat(v); ok {
		return floatToken(f)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// floatToken writes integral floats in plain decimal so they meet the integer
// tokens above. NaN keys behave like nil and -0 equals 0.
func floatToken(f float64) string {
	switch {
	case math.IsNaN(f):
		return nilToken
	case f == 0:
		return "n:0"
	case !math.IsInf(f, 0) && f == math.Trunc(f):
		return "n:" + strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// ToFloat converts any Go integer or float kind to float64. Arbitrary
// precision integers and decimal values exposing Float64, such as the
// database driver's DECIMAL type, are converted too.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case *big.Int:
		if x == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, true
	case interface{ Float64() float64 }:
		return x.Float64(), true
	default:
		return 0, false
	}
}
