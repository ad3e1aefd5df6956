package ir3

import (
	"github.com/freedreno-zz/freedreno-sub001/translate"
)

var f = translate.From
