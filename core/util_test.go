package core

import (
	"reflect"
	"testing"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "1", want: []int{1}},
		{in: " 1, 4,7 ", want: []int{1, 4, 7}},
		{in: "1,,2,", want: []int{1, 2}},
		{in: "", wantErr: true},
		{in: " , ", wantErr: true},
		{in: "1,x", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseIDs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIDs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !IsValidation(err) {
			t.Errorf("ParseIDs(%q) error = %v, want a ValidationError", tt.in, err)
		}
		if !reflect.DeepEqual(got, tt.want) && !tt.wantErr {
			t.Errorf("ParseIDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
