package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJsonParser_Object(t *testing.T) {
	j, err := UnmarshalToMaybeJson([]byte(`{"name": "Patient 1", "spo2": 88, "lab_results": null}`))
	assert.NoError(t, err)

	assert.True(t, j.IsValid())
	assert.Equal(t, "Patient 1", j.Get("name").String(""))

	v, e := j.Get("spo2").AsFloat64()
	assert.NoError(t, e)
	assert.EqualValues(t, 88, v)

	// nullとキーの欠落は区別される。
	assert.True(t, j.Get("lab_results").IsNull())
	assert.True(t, j.Get("lab_results").IsValid())

	assert.False(t, j.Get("missing").IsNull())
	assert.False(t, j.Get("missing").IsValid())
}

func TestJsonParser_TypeMismatch(t *testing.T) {
	j, err := UnmarshalToMaybeJson([]byte(`{"name": "Patient 1", "spo2": 88}`))
	assert.NoError(t, err)

	_, e := j.Get("name").AsFloat64()
	assert.Error(t, e)

	_, e = j.Get("spo2").AsString()
	assert.Error(t, e)

	// デフォルト値つきのアクセスはエラーにならない。
	assert.EqualValues(t, 0, j.Get("name").Float64(0))
	assert.Equal(t, "none", j.Get("spo2").String("none"))
}

func TestJsonParser_Iterate(t *testing.T) {
	j, err := UnmarshalToMaybeJson([]byte(`{"heartRate": 130, "spo2": 88}`))
	assert.NoError(t, err)

	values := map[string]float64{}

	j.Iterate(func(key string, value MaybeJson) {
		values[key] = value.Float64(-1)
	})

	assert.EqualValues(t, map[string]float64{"heartRate": 130, "spo2": 88}, values)
}

func TestJsonParser_Invalid(t *testing.T) {
	j, err := UnmarshalToMaybeJson([]byte(`{`))
	assert.Nil(t, j)
	assert.Error(t, err)
}
