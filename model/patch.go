package model

import (
	"fmt"
	"reflect"

	"github.com/iancoleman/strcase"

	C "github.com/lifesevatra/doctor-server/constant"
	"github.com/lifesevatra/doctor-server/lib"
)

// バイタル更新パッチ。nilのフィールドは更新対象外となる。
type VitalsPatch struct {
	HeartRate   *float64 `json:"heartRate"`
	Spo2        *float64 `json:"spo2"`
	RespRate    *float64 `json:"respRate"`
	Temperature *float64 `json:"temperature"`
	BpSystolic  *float64 `json:"bpSystolic"`
	BpDiastolic *float64 `json:"bpDiastolic"`
}

// 任意文字列。Validがtrueの場合のみ更新対象となり、Valueがnilならばnullへのクリアを表す。
// 「指定なし」と「明示的なクリア」を区別するために用いる。
type OptionalText struct {
	Valid bool
	Value *string
}

func Text(value string) OptionalText {
	return OptionalText{Valid: true, Value: &value}
}

func NullText() OptionalText {
	return OptionalText{Valid: true, Value: nil}
}

// 臨床情報更新パッチ。バイタル以外の自由記述フィールドのみを対象とする。
type ClinicalInfoPatch struct {
	PresentingAilment OptionalText
	MedicalHistory    OptionalText
	ClinicalNotes     OptionalText
	LabResults        OptionalText
}

// 医師プロフィール更新パッチ。
type ProfilePatch struct {
	FullName       *string `json:"full_name"`
	Specialization *string `json:"specialization"`
	Qualification  *string `json:"qualification"`
	Department     *string `json:"department"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
}

// 構造体のフィールド名からJSONキーへの対応を作成する。
func jsonKeys(t reflect.Type, toKey func(string) string) map[string]int {
	keys := map[string]int{}

	for i := 0; i < t.NumField(); i++ {
		keys[toKey(t.Field(i).Name)] = i
	}

	return keys
}

// VitalsPatchFromJson ダッシュボードから送信されたJSONペイロードをパッチに変換する。
// 未知のキーと数値以外の値はマージ前に拒否される。
func VitalsPatchFromJson(j lib.MaybeJson) (*VitalsPatch, error) {
	if _, ok := j.Interface().(map[string]interface{}); !ok {
		return nil, C.NewBadRequestError(
			"invalid_vitals_payload",
			"Vitals payload must be an object",
			map[string]interface{}{},
		)
	}

	patch := &VitalsPatch{}

	v := reflect.ValueOf(patch).Elem()
	keys := jsonKeys(v.Type(), strcase.ToLowerCamel)

	var err error

	j.Iterate(func(key string, value lib.MaybeJson) {
		if err != nil {
			return
		}

		i, known := keys[key]

		if !known {
			err = C.NewBadRequestError(
				"invalid_vitals_payload",
				fmt.Sprintf("Unknown vital sign: %s", key),
				map[string]interface{}{"Key": key},
			)
		} else if n, e := value.AsFloat64(); e != nil {
			err = C.NewBadRequestError(
				"invalid_vitals_payload",
				fmt.Sprintf("%s must be a number", key),
				map[string]interface{}{"Key": key},
			)
		} else {
			nv := n
			v.Field(i).Set(reflect.ValueOf(&nv))
		}
	})

	if err != nil {
		return nil, err
	}

	return patch, nil
}

// ClinicalInfoPatchFromJson 臨床情報のJSONペイロードをパッチに変換する。
// nullはフィールドのクリアを表し、キー自体の省略は更新対象外を表す。
func ClinicalInfoPatchFromJson(j lib.MaybeJson) (*ClinicalInfoPatch, error) {
	if _, ok := j.Interface().(map[string]interface{}); !ok {
		return nil, C.NewBadRequestError(
			"invalid_clinical_payload",
			"Clinical info payload must be an object",
			map[string]interface{}{},
		)
	}

	patch := &ClinicalInfoPatch{}

	v := reflect.ValueOf(patch).Elem()
	keys := jsonKeys(v.Type(), strcase.ToSnake)

	var err error

	j.Iterate(func(key string, value lib.MaybeJson) {
		if err != nil {
			return
		}

		i, known := keys[key]

		if !known {
			err = C.NewBadRequestError(
				"invalid_clinical_payload",
				fmt.Sprintf("Unknown clinical field: %s", key),
				map[string]interface{}{"Key": key},
			)
		} else if value.IsNull() {
			v.Field(i).Set(reflect.ValueOf(NullText()))
		} else if s, e := value.AsString(); e != nil {
			err = C.NewBadRequestError(
				"invalid_clinical_payload",
				fmt.Sprintf("%s must be a string or null", key),
				map[string]interface{}{"Key": key},
			)
		} else {
			v.Field(i).Set(reflect.ValueOf(Text(s)))
		}
	})

	if err != nil {
		return nil, err
	}

	return patch, nil
}

// ProfilePatchFromJson プロフィールのJSONペイロードをパッチに変換する。
func ProfilePatchFromJson(j lib.MaybeJson) (*ProfilePatch, error) {
	if _, ok := j.Interface().(map[string]interface{}); !ok {
		return nil, C.NewBadRequestError(
			"invalid_profile_payload",
			"Profile payload must be an object",
			map[string]interface{}{},
		)
	}

	patch := &ProfilePatch{}

	v := reflect.ValueOf(patch).Elem()
	keys := jsonKeys(v.Type(), strcase.ToSnake)

	var err error

	j.Iterate(func(key string, value lib.MaybeJson) {
		if err != nil {
			return
		}

		i, known := keys[key]

		if !known {
			err = C.NewBadRequestError(
				"invalid_profile_payload",
				fmt.Sprintf("Unknown profile field: %s", key),
				map[string]interface{}{"Key": key},
			)
		} else if s, e := value.AsString(); e != nil {
			err = C.NewBadRequestError(
				"invalid_profile_payload",
				fmt.Sprintf("%s must be a string", key),
				map[string]interface{}{"Key": key},
			)
		} else {
			sv := s
			v.Field(i).Set(reflect.ValueOf(&sv))
		}
	})

	if err != nil {
		return nil, err
	}

	return patch, nil
}
