package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount は金額です
// フォームからは文字列（"1200"）で送られてくるため、数値と文字列の両方を受け付けます
type Amount float64

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !finite(f) {
			return fmt.Errorf("invalid amount %q", s)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil || !finite(f) {
		return fmt.Errorf("invalid amount %s", b)
	}
	*a = Amount(f)
	return nil
}

// Valid は金額がJSONで表現でき、負でないことを返します
func (a Amount) Valid() bool {
	return finite(float64(a)) && a >= 0
}

// NaN と ±Inf はJSONに保存できません
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
