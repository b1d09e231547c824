package lib

import (
	"fmt"

	"encoding/json"
)

// MaybeJson パース済みJSONの値。キーの有無とnullを区別してアクセスできる。
type MaybeJson interface {
	Interface() interface{}

	Get(key string) MaybeJson

	Iterate(func(string, MaybeJson))

	String(def string) string

	AsString() (string, error)

	Float64(def float64) float64

	AsFloat64() (float64, error)

	IsNull() bool

	IsEmpty() bool

	IsValid() bool
}

func AsJson(j interface{}) MaybeJson {
	if j == nil {
		return jsonNull{jsonEmpty{}}
	}

	switch v := j.(type) {
	case float64:
		return jsonNumber{v, jsonEmpty{}}
	case string:
		return jsonString{v, jsonEmpty{}}
	case map[string]interface{}:
		return jsonObject{v, jsonEmpty{}}
	default:
		return jsonEmpty{}
	}
}

type jsonObject struct {
	object map[string]interface{}
	jsonEmpty
}

func (j jsonObject) Interface() interface{} {
	return j.object
}

func (j jsonObject) Get(key string) MaybeJson {
	if v, has := j.object[key]; has {
		return AsJson(v)
	} else {
		return jsonEmpty{}
	}
}

func (j jsonObject) Iterate(f func(string, MaybeJson)) {
	for k, v := range j.object {
		f(k, AsJson(v))
	}
}

func (j jsonObject) IsEmpty() bool {
	return len(j.object) == 0
}

func (j jsonObject) IsValid() bool {
	return true
}

type jsonNumber struct {
	value float64
	jsonEmpty
}

func (j jsonNumber) Interface() interface{} {
	return j.value
}

func (j jsonNumber) Float64(def float64) float64 {
	return j.value
}

func (j jsonNumber) AsFloat64() (float64, error) {
	return j.value, nil
}

func (j jsonNumber) IsEmpty() bool {
	return false
}

func (j jsonNumber) IsValid() bool {
	return true
}

type jsonString struct {
	value string
	jsonEmpty
}

func (j jsonString) Interface() interface{} {
	return j.value
}

func (j jsonString) String(def string) string {
	return j.value
}

func (j jsonString) AsString() (string, error) {
	return j.value, nil
}

func (j jsonString) IsEmpty() bool {
	return false
}

func (j jsonString) IsValid() bool {
	return true
}

// jsonのnull。
type jsonNull struct {
	jsonEmpty
}

func (j jsonNull) IsNull() bool {
	return true
}

func (j jsonNull) IsEmpty() bool {
	return true
}

func (j jsonNull) IsValid() bool {
	return true
}

type jsonEmpty struct {
}

func (j jsonEmpty) Interface() interface{} {
	return nil
}

func (j jsonEmpty) Get(key string) MaybeJson {
	return jsonEmpty{}
}

func (j jsonEmpty) Iterate(f func(string, MaybeJson)) {
}

func (j jsonEmpty) String(def string) string {
	return def
}

func (j jsonEmpty) AsString() (string, error) {
	return "", fmt.Errorf("This element is not a string")
}

func (j jsonEmpty) Float64(def float64) float64 {
	return def
}

func (j jsonEmpty) AsFloat64() (float64, error) {
	return 0, fmt.Errorf("This element is not a number")
}

func (j jsonEmpty) IsNull() bool {
	return false
}

func (j jsonEmpty) IsEmpty() bool {
	return true
}

func (j jsonEmpty) IsValid() bool {
	return false
}

func UnmarshalToMaybeJson(bytes []byte) (MaybeJson, error) {
	var body interface{}

	err := json.Unmarshal(bytes, &body)
	if err != nil {
		return nil, err
	}

	maybeJson := AsJson(body)

	return maybeJson, nil
}
