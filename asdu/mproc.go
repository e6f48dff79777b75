// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package asdu

// Application service data unit for process information in the monitoring direction.

// checkValid checks that the common parameters of a monitored-information
// request are sane and that the resulting ASDU fits ASDUSizeMax.
func checkValid(c Connect, typeID TypeID, isSequence bool, infosLen int) error {
	if infosLen == 0 {
		return ErrNotAnyObjInfo
	}
	objSize, err := GetInfoObjSize(typeID)
	if err != nil {
		return err
	}
	param := c.Params()
	if err := param.Valid(); err != nil {
		return err
	}

	var asduLen int
	if isSequence {
		asduLen = param.IdentifierSize() + infosLen*objSize + param.InfoObjAddrSize
	} else {
		asduLen = param.IdentifierSize() + infosLen*(objSize+param.InfoObjAddrSize)
	}

	if asduLen > ASDUSizeMax {
		return ErrLengthOutOfRange
	}
	return nil
}

// SinglePointInfo is one single-point information object.
type SinglePointInfo struct {
	Ioa InfoObjAddr
	// Value is the single-point state.
	Value bool
	// Qds is the quality descriptor; QDSGood means no remarks.
	Qds QualityDescriptor
}

// EncodeSIQ packs a single-point value and its quality flags into one SIQ
// octet: bit 0 carries the value, the quality flags occupy the rest of the
// octet untouched save for that bit.
// See companion standard 101, subclass 7.2.6.1.
func EncodeSIQ(value bool, qds QualityDescriptor) byte {
	flags := byte(qds) &^ 0x01
	if value {
		return flags | 0x01
	}
	return flags
}

// single sends a type identification [M_SP_NA_1], single-point information.
// [M_SP_NA_1] See companion standard 101, subclass 7.3.1.1.
func single(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...SinglePointInfo) error {
	if err := checkValid(c, typeID, isSequence, len(infos)); err != nil {
		return err
	}

	u := NewASDU(c.Params(), Identifier{
		typeID,
		VariableStruct{IsSequence: isSequence},
		coa,
		0,
		ca,
	})
	if err := u.SetVariableNumber(len(infos)); err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if !isSequence || !once {
			once = true
			if err := u.AppendInfoObjAddr(v.Ioa); err != nil {
				return err
			}
		}
		u.AppendBytes(EncodeSIQ(v.Value, v.Qds))
	}
	return c.Send(u)
}

// Single sends a type identification [M_SP_NA_1], single-point information
// without a time tag.
// [M_SP_NA_1] See companion standard 101, subclass 7.3.1.1.
// The cause of transmission is used for, in the monitoring direction:
// <2> := background scan
// <3> := spontaneous
// <5> := requested
// <11> := return information caused by a remote command
// <12> := return information caused by a local command
// <20> := interrogated by station interrogation
func Single(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...SinglePointInfo) error {
	if !(coa.Cause == Background || coa.Cause == Spontaneous || coa.Cause == Request ||
		coa.Cause == ReturnInfoRemote || coa.Cause == ReturnInfoLocal ||
		coa.Cause == InterrogatedByStation) {
		return ErrCmdCause
	}
	return single(c, M_SP_NA_1, isSequence, coa, ca, infos...)
}

// MeasuredValueFloatInfo is one short-floating-point measured value
// information object.
type MeasuredValueFloatInfo struct {
	Ioa   InfoObjAddr
	Value float32
	// Qds is the quality descriptor; QDSGood means no remarks.
	Qds QualityDescriptor
}

// measuredValueFloat sends a type identification [M_ME_NC_1], measured
// value, short floating point number.
// [M_ME_NC_1] See companion standard 101, subclass 7.3.1.13.
func measuredValueFloat(c Connect, typeID TypeID, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueFloatInfo) error {
	if err := checkValid(c, typeID, isSequence, len(infos)); err != nil {
		return err
	}

	u := NewASDU(c.Params(), Identifier{
		typeID,
		VariableStruct{IsSequence: isSequence},
		coa,
		0,
		ca,
	})
	if err := u.SetVariableNumber(len(infos)); err != nil {
		return err
	}
	once := false
	for _, v := range infos {
		if !isSequence || !once {
			once = true
			if err := u.AppendInfoObjAddr(v.Ioa); err != nil {
				return err
			}
		}
		u.AppendFloat32(v.Value).AppendBytes(byte(v.Qds))
	}
	return c.Send(u)
}

// MeasuredValueFloat sends a type identification [M_ME_NC_1], measured
// value, short floating point number.
// [M_ME_NC_1] See companion standard 101, subclass 7.3.1.13.
// The cause of transmission is used for, in the monitoring direction:
// <1> := periodic/cyclic
// <2> := background scan
// <3> := spontaneous
// <5> := requested
// <20> := interrogated by station interrogation
func MeasuredValueFloat(c Connect, isSequence bool, coa CauseOfTransmission, ca CommonAddr, infos ...MeasuredValueFloatInfo) error {
	if !(coa.Cause == Periodic || coa.Cause == Background ||
		coa.Cause == Spontaneous || coa.Cause == Request ||
		coa.Cause == InterrogatedByStation) {
		return ErrCmdCause
	}
	return measuredValueFloat(c, M_ME_NC_1, isSequence, coa, ca, infos...)
}

// GetSinglePoint [M_SP_NA_1] returns the single-point information objects.
func (sf *ASDU) GetSinglePoint() []SinglePointInfo {
	info := make([]SinglePointInfo, 0, sf.Variable.Number)
	infoObjAddr := InfoObjAddr(0)
	for i, once := 0, false; i < int(sf.Variable.Number); i++ {
		if !sf.Variable.IsSequence || !once {
			once = true
			infoObjAddr = sf.DecodeInfoObjAddr()
		} else {
			infoObjAddr++
		}
		value := sf.DecodeByte()
		info = append(info, SinglePointInfo{
			Ioa:   infoObjAddr,
			Value: value&0x01 == 0x01,
			Qds:   QualityDescriptor(value &^ 0x01),
		})
	}
	return info
}

// GetMeasuredValueFloat [M_ME_NC_1] returns the short-float measured value
// information objects.
func (sf *ASDU) GetMeasuredValueFloat() []MeasuredValueFloatInfo {
	info := make([]MeasuredValueFloatInfo, 0, sf.Variable.Number)
	infoObjAddr := InfoObjAddr(0)
	for i, once := 0, false; i < int(sf.Variable.Number); i++ {
		if !sf.Variable.IsSequence || !once {
			once = true
			infoObjAddr = sf.DecodeInfoObjAddr()
		} else {
			infoObjAddr++
		}
		value := sf.DecodeFloat()
		qua := sf.DecodeByte()
		info = append(info, MeasuredValueFloatInfo{
			Ioa:   infoObjAddr,
			Value: value,
			Qds:   QualityDescriptor(qua),
		})
	}
	return info
}
