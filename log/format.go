// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.
package log

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/big"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

const (
	timeFormat     = "2006-01-02T15:04:05-0700"
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
	termMaxPadding = 40
	colorReset     = "\x1b[0m"
)

var spaces = bytes.Repeat([]byte{' '}, termMsgJust)

// format renders r as one terminal line:
// LEVEL[time] message              key=value key=value
func (h *TerminalHandler) format(buf []byte, r slog.Record, usecolor bool) []byte {
	b := bytes.NewBuffer(buf)

	color := ""
	if usecolor {
		color = levelColor(r.Level)
	}
	if color != "" {
		b.WriteString(color)
		b.WriteString(LevelAlignedString(r.Level))
		b.WriteString(colorReset)
	} else {
		b.WriteString(LevelAlignedString(r.Level))
	}
	b.WriteByte('[')
	b.Write(r.Time.AppendFormat(b.AvailableBuffer(), termTimeFormat))
	b.WriteString("] ")

	msg := escapeMessage(r.Message)
	b.WriteString(msg)
	if r.NumAttrs()+len(h.attrs) > 0 && len(msg) < termMsgJust {
		b.Write(spaces[:termMsgJust-len(msg)])
	}

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	for i, a := range attrs {
		h.writeAttr(b, a, color, i == len(attrs)-1)
	}
	b.WriteByte('\n')
	return b.Bytes()
}

// writeAttr writes key=value. Values of the same key are padded to the widest
// one seen so far, so consecutive lines stay aligned.
func (h *TerminalHandler) writeAttr(b *bytes.Buffer, a slog.Attr, color string, last bool) {
	b.WriteByte(' ')
	if color != "" {
		b.WriteString(color)
		b.Write(appendEscapeString(b.AvailableBuffer(), a.Key))
		b.WriteString(colorReset)
	} else {
		b.Write(appendEscapeString(b.AvailableBuffer(), a.Key))
	}
	b.WriteByte('=')

	val := formatValue(a.Value, b.AvailableBuffer())
	length := utf8.RuneCount(val)
	padding := h.fieldPadding[a.Key]
	if padding < length && length <= termMaxPadding {
		padding = length
		h.fieldPadding[a.Key] = padding
	}
	b.Write(val)
	if !last && padding > length {
		b.Write(spaces[:padding-length])
	}
}

// formatValue renders v for the terminal. Integers get thousand separators,
// typed nil pointers print as <nil>.
func formatValue(v slog.Value, tmp []byte) (result []byte) {
	var value any
	defer func() {
		if err := recover(); err != nil {
			if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr && rv.IsNil() {
				result = []byte("<nil>")
				return
			}
			panic(err)
		}
	}()

	switch v.Kind() {
	case slog.KindString:
		return appendEscapeString(tmp, v.String())
	case slog.KindInt64:
		return appendGrouped(tmp, strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return appendGrouped(tmp, strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return strconv.AppendFloat(tmp, v.Float64(), 'f', 3, 64)
	case slog.KindBool:
		return strconv.AppendBool(tmp, v.Bool())
	case slog.KindTime:
		return v.Time().AppendFormat(tmp, timeFormat)
	case slog.KindDuration:
		return appendEscapeString(tmp, v.Duration().String())
	}

	value = v.Any()
	switch x := value.(type) {
	case nil:
		return append(tmp, "<nil>"...)
	case *big.Int:
		return appendGrouped(tmp, x.String())
	case *uint256.Int:
		return appendGrouped(tmp, x.Dec())
	case error:
		return appendEscapeString(tmp, x.Error())
	case fmt.Stringer:
		return appendEscapeString(tmp, x.String())
	}
	return appendEscapeString(tmp, fmt.Sprintf("%+v", value))
}

// appendGrouped appends a decimal number, optionally signed, with commas
// between groups of three digits. Numbers below 100000 are left as they are.
func appendGrouped(dst []byte, digits string) []byte {
	if digits != "" && digits[0] == '-' {
		dst = append(dst, '-')
		digits = digits[1:]
	}
	if len(digits) <= 5 {
		return append(dst, digits...)
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	dst = append(dst, digits[:head]...)
	for i := head; i < len(digits); i += 3 {
		dst = append(dst, ',')
		dst = append(dst, digits[i:i+3]...)
	}
	return dst
}

// appendEscapeString appends s, quoted when it holds '=', spaces, quotes,
// control or non-ASCII characters.
func appendEscapeString(dst []byte, s string) []byte {
	for _, r := range s {
		if r <= '"' || r > '~' || r == '=' {
			return strconv.AppendQuote(dst, s)
		}
	}
	return append(dst, s...)
}

// escapeMessage is the lenient variant of appendEscapeString for messages:
// spaces and line breaks are fine, '=' and other control characters are not.
func escapeMessage(s string) string {
	for _, r := range s {
		if r == '\r' || r == '\n' || r == '\t' {
			continue
		}
		if r < ' ' || r > '~' || r == '=' {
			return strconv.Quote(s)
		}
	}
	return s
}
