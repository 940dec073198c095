package calendar

import "fmt"

// Break years of the 2820 year grand cycle used by the Borkowski algorithm.
var persianBreaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

// ToPersian converts a Gregorian date to the Persian calendar.
func ToPersian(gy, gm, gd int) (int, int, int, error) {
	if gm < 1 || gm > 12 || gd < 1 || gd > 31 {
		return 0, 0, 0, fmt.Errorf("%w: %04d-%02d-%02d", ErrOutOfRange, gy, gm, gd)
	}
	jy, jm, jd, ok := dayToPersian(gregorianToDay(gy, gm, gd))
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %04d-%02d-%02d", ErrOutOfRange, gy, gm, gd)
	}
	return jy, jm, jd, nil
}

// FromPersian converts a Persian date to the Gregorian calendar.
func FromPersian(jy, jm, jd int) (int, int, int, error) {
	if jm < 1 || jm > 12 || jd < 1 || jd > 31 {
		return 0, 0, 0, fmt.Errorf("%w: %04d/%02d/%02d", ErrOutOfRange, jy, jm, jd)
	}
	info, ok := persianYear(jy)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %04d/%02d/%02d", ErrOutOfRange, jy, jm, jd)
	}
	jdn := gregorianToDay(info.gy, 3, info.march) + (jm-1)*31 - (jm/7)*(jm-7) + jd - 1
	gy, gm, gd := dayToGregorian(jdn)
	return gy, gm, gd, nil
}

// IsPersianLeap reports whether jy has 30 days in Esfand.
func IsPersianLeap(jy int) bool {
	info, ok := persianYear(jy)
	return ok && info.leap == 0
}

func persianYearDay(jm, jd int) int {
	if jm <= 6 {
		return (jm-1)*31 + jd
	}
	return 186 + (jm-7)*30 + jd
}

type persianYearInfo struct {
	leap  int // years since the last leap year, 0 for a leap year
	gy    int // Gregorian year in which the Persian year starts
	march int // day of March on which Farvardin 1 falls
}

func persianYear(jy int) (persianYearInfo, bool) {
	n := len(persianBreaks)
	if jy < persianBreaks[0] || jy >= persianBreaks[n-1] {
		return persianYearInfo{}, false
	}

	gy := jy + 621
	leapJ := -14
	jp := persianBreaks[0]
	jump := 0
	for i := 1; i < n; i++ {
		jm := persianBreaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += (jump/33)*8 + (jump%33)/4
		jp = jm
	}

	k := jy - jp
	leapJ += (k/33)*8 + ((k%33)+3)/4
	if jump%33 == 4 && jump-k == 4 {
		leapJ++
	}

	leapG := gy/4 - ((gy/100+1)*3)/4 - 150
	march := 20 + leapJ - leapG

	if jump-k < 6 {
		k = k - jump + ((jump+4)/33)*33
	}
	leap := (((k + 1) % 33) - 1) % 4
	if leap == -1 {
		leap = 4
	}

	return persianYearInfo{leap: leap, gy: gy, march: march}, true
}

func dayToPersian(jdn int) (int, int, int, bool) {
	gy, _, _ := dayToGregorian(jdn)
	jy := gy - 621
	info, ok := persianYear(jy)
	if !ok {
		return 0, 0, 0, false
	}

	k := jdn - gregorianToDay(gy, 3, info.march)
	if k >= 0 {
		if k <= 185 {
			return jy, 1 + k/31, k%31 + 1, true
		}
		k -= 186
	} else {
		jy--
		k += 179
		if info.leap == 1 {
			k++
		}
	}
	return jy, 7 + k/30, k%30 + 1, true
}

// gregorianToDay returns the Julian Day Number of a Gregorian date.
func gregorianToDay(gy, gm, gd int) int {
	d := ((gy+(gm-8)/6+100100)*1461)/4 +
		(153*((gm+9)%12)+2)/5 +
		gd - 34840408
	return d - ((gy+100100+(gm-8)/6)/100*3)/4 + 752
}

func dayToGregorian(jdn int) (int, int, int) {
	j := 4*jdn + 139361631
	j += (((4*jdn + 183187720) / 146097) * 3 / 4) * 4 - 3908
	i := ((j%1461)/4)*5 + 308
	gd := (i%153)/5 + 1
	gm := (i/153)%12 + 1
	gy := j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}
